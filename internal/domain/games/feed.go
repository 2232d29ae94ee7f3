package games

import (
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
)

var feedTypeNames = map[string]string{
	"HOME":     "Home",
	"AWAY":     "Away",
	"FRENCH":   "French",
	"NATIONAL": "National",
}

// FeedTypeFromCode maps an upstream mediaFeedType code to its display name.
// Unknown codes pass through unchanged.
func FeedTypeFromCode(code string) string {
	if name, ok := feedTypeNames[code]; ok {
		return name
	}
	return code
}

// Feed is one broadcast of a game.
type Feed struct {
	Type        string       `json:"type"`
	CallLetters string       `json:"callLetters,omitempty"`
	Name        string       `json:"name,omitempty"`
	PlaybackID  int64        `json:"playbackId"`
	League      teams.League `json:"league"`
	GameDate    string       `json:"gameDate"`
	GameStart   time.Time    `json:"gameStart"`
}

// Title is the display name: the feed name when set, else "Type (CALL)", else the type.
func (f Feed) Title() string {
	if f.Name != "" {
		return f.Name
	}
	if f.CallLetters != "" {
		return fmt.Sprintf("%s (%s)", f.Type, f.CallLetters)
	}
	return f.Type
}

// FeedKey identifies a feed across schedule reloads.
type FeedKey struct {
	League     teams.League
	GameDate   string
	PlaybackID int64
}

func (k FeedKey) String() string {
	return fmt.Sprintf("%s/%s/%d", k.League, k.GameDate, k.PlaybackID)
}

func (f Feed) Key() FeedKey {
	return FeedKey{League: f.League, GameDate: f.GameDate, PlaybackID: f.PlaybackID}
}

// CDN is a content-delivery network selector. Its value is the URL suffix.
type CDN string

const (
	CDNAkamai CDN = "akc"
	CDNLevel3 CDN = "l3c"
)

// CDNs lists the supported networks, default first.
var CDNs = []CDN{CDNAkamai, CDNLevel3}

func (c CDN) Title() string {
	switch c {
	case CDNAkamai:
		return "Akamai"
	case CDNLevel3:
		return "Level 3"
	default:
		return string(c)
	}
}

// ParseCDN accepts a suffix ("akc") or a title ("Level 3"), case-insensitively.
// An empty value selects Akamai.
func ParseCDN(raw string) (CDN, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CDNAkamai, nil
	}
	for _, c := range CDNs {
		if strings.EqualFold(raw, string(c)) || strings.EqualFold(raw, c.Title()) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown cdn %q", raw)
}

// StreamVariant is one playable rendition. The first variant of a resolved list is
// always the master playlist with quality "Auto".
type StreamVariant struct {
	URL       string `json:"url"`
	Quality   string `json:"quality"`
	Bandwidth *int   `json:"bandwidth,omitempty"`
	FrameRate *int   `json:"frameRate,omitempty"`
}

// QualityAuto labels the master playlist entry.
const QualityAuto = "Auto"
