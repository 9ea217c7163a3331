package main

import (
	"github.com/urfave/cli/v2"

	"workdesk/internal/capture"
)

func snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Save a PNG of a running calendar page via headless Chromium.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://127.0.0.1:8080/calendar", Usage: "page to capture"},
			&cli.StringFlag{Name: "out", Value: "./cache/preview.png", Usage: "output PNG path"},
			&cli.IntFlag{Name: "width", Value: capture.DefaultWidth},
			&cli.IntFlag{Name: "height", Value: capture.DefaultHeight},
			&cli.DurationFlag{Name: "timeout", Value: capture.DefaultTimeout},
		},
		Action: func(c *cli.Context) error {
			return capture.CapturePNG(c.Context, capture.Options{
				URL:        c.String("url"),
				OutputPath: c.String("out"),
				Width:      c.Int("width"),
				Height:     c.Int("height"),
				Timeout:    c.Duration("timeout"),
			})
		},
	}
}
