package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"workdesk/internal/calendar"
	"workdesk/internal/datemath"
	"workdesk/internal/eventindex"
	appLog "workdesk/internal/log"
	"workdesk/internal/store"
	"workdesk/internal/web"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render one calendar view to HTML or JSON.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "view", Value: "month", Usage: "month, week or 3day"},
			&cli.StringFlag{Name: "date", Usage: "anchor date YYYY-MM-DD (default today)"},
			&cli.StringFlag{Name: "format", Value: "html", Usage: "html or json"},
			&cli.StringFlag{Name: "out", Usage: "output file (default stdout)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			events, err := store.NewLoader(store.SourceFromConfig(cfg), cfg.CacheDir).Load(c.Context)
			if err != nil {
				return err
			}
			idx := eventindex.Build(events)

			loc := cfg.Location()
			ctrl := calendar.NewController(idx, func() string { return datemath.TodayIn(loc) })

			anchor := c.String("date")
			if anchor != "" && !datemath.Valid(anchor) {
				return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", anchor)
			}
			view := ctrl.Navigate(calendar.ParseMode(c.String("view")), anchor)

			var w io.Writer = os.Stdout
			if out := c.String("out"); out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			switch c.String("format") {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				err = enc.Encode(view)
			case "html":
				err = web.WritePage(w, ctrl.State(), idx, ctrl.Today())
			default:
				return fmt.Errorf("unknown --format %q", c.String("format"))
			}
			if err != nil {
				return err
			}

			appLog.Info("view rendered", "view", view.Mode.String(), "anchor", view.Anchor, "format", c.String("format"))
			return nil
		},
	}
}
