package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	domaingames "github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
)

// output renders results as aligned tables for a terminal or JSON for pipes.
type output struct {
	w    io.Writer
	json bool
}

type gameRow struct {
	domaingames.Game
	Description string `json:"description"`
	Favorite    bool   `json:"favorite"`
}

func (o output) games(league teams.League, date string, list []domaingames.Game, favs teams.Favorites, loc *time.Location) error {
	rows := make([]gameRow, 0, len(list))
	for _, g := range list {
		rows = append(rows, gameRow{Game: g, Description: g.Description(loc), Favorite: g.HasFavoriteTeam(favs)})
	}
	if o.json {
		return o.encode(map[string]any{"league": league, "date": date, "games": rows})
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintf(o.w, "No %s games on %s.\n", league, date)
		return err
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tMATCHUP\tSTATUS\tFEEDS")
	for _, r := range rows {
		star := ""
		if r.Favorite {
			star = "*"
		}
		fmt.Fprintf(tw, "%s\t%s @ %s\t%s\t%s\n", star, r.AwayTeam.Name(), r.HomeTeam.Name(), r.Description, feedList(r.Feeds))
	}
	return tw.Flush()
}

func feedList(feeds []domaingames.Feed) string {
	if len(feeds) == 0 {
		return "-"
	}
	out := ""
	for i, f := range feeds {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s [%d]", f.Title(), f.PlaybackID)
	}
	return out
}

func (o output) streams(feed domaingames.Feed, cdn domaingames.CDN, variants []domaingames.StreamVariant) error {
	if o.json {
		return o.encode(map[string]any{
			"feed":     feed,
			"title":    feed.Title(),
			"cdn":      cdn,
			"variants": variants,
		})
	}

	fmt.Fprintf(o.w, "%s via %s\n", feed.Title(), cdn.Title())
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "QUALITY\tBANDWIDTH\tURL")
	for _, v := range variants {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Quality, bandwidth(v.Bandwidth), v.URL)
	}
	return tw.Flush()
}

func bandwidth(bw *int) string {
	if bw == nil {
		return "-"
	}
	return humanize.SIWithDigits(float64(*bw), 1, "bps")
}

func (o output) cdns() error {
	if o.json {
		type cdnView struct {
			ID    domaingames.CDN `json:"id"`
			Title string          `json:"title"`
		}
		views := make([]cdnView, 0, len(domaingames.CDNs))
		for _, c := range domaingames.CDNs {
			views = append(views, cdnView{ID: c, Title: c.Title()})
		}
		return o.encode(views)
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, c := range domaingames.CDNs {
		fmt.Fprintf(tw, "%s\t%s\n", c, c.Title())
	}
	return tw.Flush()
}

func (o output) encode(v any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
