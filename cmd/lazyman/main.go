package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/preston-bernstein/lazyman-service/internal/config"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
)

type gamesCmd struct {
	League    string `arg:"-l,--league" default:"NHL" help:"league to list (NHL or MLB)"`
	Date      string `arg:"-d,--date" help:"schedule date as YYYY-MM-DD; defaults to today"`
	Favorites string `arg:"--favorites" help:"favorite teams, e.g. NHL:BOS,MLB:NYY"`
}

type streamsCmd struct {
	League     string `arg:"-l,--league" default:"NHL" help:"league of the game"`
	Date       string `arg:"-d,--date" help:"schedule date as YYYY-MM-DD; defaults to today"`
	PlaybackID int64  `arg:"-p,--playback-id,required" help:"feed playback id from the games listing"`
	CDN        string `arg:"--cdn" default:"akc" help:"content delivery network (akc or l3c)"`
}

type cdnsCmd struct{}

type args struct {
	Games    *gamesCmd   `arg:"subcommand:games" help:"list a day's games and feeds"`
	Streams  *streamsCmd `arg:"subcommand:streams" help:"resolve playable streams for a feed"`
	CDNs     *cdnsCmd    `arg:"subcommand:cdns" help:"list content delivery networks"`
	JSON     bool        `arg:"--json" help:"print JSON even on a terminal"`
	Provider string      `arg:"--provider,env:PROVIDER" help:"schedule provider (statsapi or fixture)"`
	Timezone string      `arg:"--tz,env:DISPLAY_TIMEZONE" help:"IANA timezone for dates and start times"`
	Verbose  bool        `arg:"-v,--verbose" help:"log upstream calls to stderr"`
}

func (args) Description() string {
	return "lazyman lists NHL and MLB games and resolves their HLS streams"
}

func main() {
	_ = godotenv.Load()

	var a args
	p := arg.MustParse(&a)
	if p.Subcommand() == nil {
		p.Fail("missing subcommand: games, streams or cdns")
	}

	cfg := config.Load()
	if a.Provider != "" {
		cfg.Provider = a.Provider
	}
	if a.Timezone != "" {
		cfg.Display.Timezone = a.Timezone
	}
	level := "error"
	if a.Verbose {
		level = "debug"
	}
	logger := logging.NewLogger(logging.Config{Level: level, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := output{w: os.Stdout, json: a.JSON || !term.IsTerminal(int(os.Stdout.Fd()))}
	if err := run(ctx, a, newApp(cfg, logger), out); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, a args, app *app, out output) error {
	switch {
	case a.Games != nil:
		return runGames(ctx, app, *a.Games, out)
	case a.Streams != nil:
		return runStreams(ctx, app, *a.Streams, out)
	case a.CDNs != nil:
		return out.cdns()
	default:
		return fmt.Errorf("missing subcommand")
	}
}
