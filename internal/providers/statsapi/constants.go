package statsapi

import "time"

const (
	defaultNHLBaseURL  = "https://statsapi.web.nhl.com/api/v1"
	defaultMLBBaseURL  = "https://statsapi.mlb.com/api/v1"
	defaultHTTPTimeout = 10 * time.Second

	nhlExpand   = "schedule.teams,schedule.linescore,schedule.game.content.media.epg"
	mlbSportID  = "1"
	mlbHydrate  = "team,linescore,game(content(summary,media(epg)))"
	mlbLanguage = "en"

	maxBodyBytes = 16 << 20
)
