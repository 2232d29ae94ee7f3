package streams

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/grafov/m3u8"

	"github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/metrics"
)

var expParam = regexp.MustCompile(`exp=(\d+)`)

// expired reports whether a signed master URL's exp= timestamp, plus a grace period, is behind now.
// The last exp= occurrence wins. URLs without one never expire.
func expired(master *url.URL, now time.Time) bool {
	matches := expParam.FindAllStringSubmatch(master.String(), -1)
	if len(matches) == 0 {
		return false
	}
	exp, err := strconv.ParseInt(matches[len(matches)-1][1], 10, 64)
	if err != nil {
		return false
	}
	return now.After(time.Unix(exp, 0).Add(expiryGrace))
}

// fetchManifest downloads and decodes the master playlist.
func (r *Resolver) fetchManifest(ctx context.Context, master *url.URL) (playlist *m3u8.MasterPlaylist, err error) {
	start := r.now()
	defer func() {
		r.metrics.RecordUpstreamAttempt(metrics.SourceStreamManifest, r.now().Sub(start), err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, master.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("manifest: unexpected status %d", resp.StatusCode)
	}
	return decodeMaster(io.LimitReader(resp.Body, maxManifestBytes))
}

func decodeMaster(body io.Reader) (*m3u8.MasterPlaylist, error) {
	playlist, listType, err := m3u8.DecodeFrom(body, true)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	master, ok := playlist.(*m3u8.MasterPlaylist)
	if !ok || listType != m3u8.MASTER {
		return nil, fmt.Errorf("manifest: expected master playlist")
	}
	return master, nil
}

// buildVariants returns the "Auto" master entry followed by every rendition, ranked.
func buildVariants(master *url.URL, playlist *m3u8.MasterPlaylist) ([]games.StreamVariant, error) {
	renditions := make([]games.StreamVariant, 0, len(playlist.Variants))
	for _, v := range playlist.Variants {
		if v == nil || v.URI == "" {
			continue
		}
		ref, err := url.Parse(v.URI)
		if err != nil {
			continue
		}
		quality := v.Resolution
		if quality == "" {
			quality = qualityUnknown
		}
		renditions = append(renditions, games.StreamVariant{
			URL:       master.ResolveReference(ref).String(),
			Quality:   quality,
			Bandwidth: positive(int(v.Bandwidth)),
			FrameRate: positive(int(math.Round(v.FrameRate))),
		})
	}
	if len(renditions) == 0 {
		return nil, fmt.Errorf("manifest: no variants")
	}

	rankRenditions(renditions)

	out := make([]games.StreamVariant, 0, len(renditions)+1)
	out = append(out, games.StreamVariant{URL: master.String(), Quality: games.QualityAuto})
	return append(out, renditions...), nil
}

// rankRenditions sorts by bandwidth descending. A rendition without a bandwidth ranks
// as if it had the largest possible one, so it lands first.
func rankRenditions(list []games.StreamVariant) {
	sort.SliceStable(list, func(i, j int) bool {
		return bandwidthOrMax(list[i]) > bandwidthOrMax(list[j])
	})
}

func bandwidthOrMax(v games.StreamVariant) int {
	if v.Bandwidth == nil {
		return math.MaxInt
	}
	return *v.Bandwidth
}

func positive(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}
