package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod = "method"
	AttrPath   = "path"
	AttrStatus = "status"
	AttrSource = "source"
	AttrCache  = "cache"
)

// Upstream source and cache names shared by the recorders' callers.
const (
	SourceScheduleNHL    = "schedule-nhl"
	SourceScheduleMLB    = "schedule-mlb"
	SourceStreamRedirect = "stream-redirect"
	SourceStreamManifest = "stream-manifest"
	CacheStreams         = "stream-cache"
	CacheSchedule        = "schedule-cache"
)
