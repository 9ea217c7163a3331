package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	appLog "workdesk/internal/log"
	"workdesk/internal/store"
	"workdesk/internal/web"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server, reloading the store on schedule or on file change.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Usage: "HTTP listen address (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if l := c.String("listen"); l != "" {
				cfg.Listen = l
			}

			src := store.SourceFromConfig(cfg)
			srv := web.NewServer(cfg, store.NewLoader(src, cfg.CacheDir))

			appLog.Info("effective config",
				"listen", cfg.Listen,
				"timezone", cfg.Timezone,
				"refresh", cfg.RefreshCron,
				"remote", src.Remote(),
				"events_path", src.EventsPath,
			)

			// Without a first load there is nothing to show.
			if err := srv.Reload(c.Context); err != nil {
				return fmt.Errorf("initial store load: %w", err)
			}

			g, ctx := errgroup.WithContext(c.Context)
			g.Go(func() error { return srv.Serve(ctx) })

			if src.Remote() {
				g.Go(func() error { return runRefreshCron(ctx, cfg.RefreshCron, cfg.Location(), srv) })
			} else {
				g.Go(func() error {
					return store.Watch(ctx, src.Path, func() { reload(ctx, srv) })
				})
			}

			err = g.Wait()
			appLog.Info("workdesk exiting")
			return err
		},
	}
}

// runRefreshCron reloads the store on schedule until ctx is done. The
// schedule is read in loc, the same zone that decides "today".
func runRefreshCron(ctx context.Context, schedule string, loc *time.Location, srv *web.Server) error {
	sched, err := newRefreshScheduler(schedule, loc, func() { reload(ctx, srv) })
	if err != nil {
		return err
	}
	sched.Start()
	appLog.Info("store refresh scheduled", "cron", schedule, "timezone", sched.Location().String())

	<-ctx.Done()
	<-sched.Stop().Done()
	return nil
}

func newRefreshScheduler(schedule string, loc *time.Location, fn func()) (*cron.Cron, error) {
	if loc == nil {
		loc = time.Local
	}
	sched := cron.New(cron.WithLocation(loc))
	if _, err := sched.AddFunc(schedule, fn); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return sched, nil
}

func reload(ctx context.Context, srv *web.Server) {
	if err := srv.Reload(ctx); err != nil {
		appLog.Error("store reload failed; keeping previous events", err)
	}
}
