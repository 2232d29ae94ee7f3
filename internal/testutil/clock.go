package testutil

import "time"

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustParseRFC3339 parses an RFC3339 timestamp or panics; intended for tests.
func MustParseRFC3339(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}

// MustLocation loads an IANA zone or panics.
func MustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// LocalClock is a fixed clock at a wall-clock time in a named zone, e.g.
// LocalClock("2021-03-01 22:00", "America/New_York") for a game night that is already
// the next day in UTC.
func LocalClock(wall, zone string) func() time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", wall, MustLocation(zone))
	if err != nil {
		panic(err)
	}
	return NowAt(t)
}
