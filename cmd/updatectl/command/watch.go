package command

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep checking in the foreground on the configured interval",
	Long: `watch runs the background check loop for every configured
application until interrupted. Results land in the state directory
only; a later "updatectl check" or the host application reads them
from there.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(c)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	for _, app := range c.Apps {
		session, err := newSession(c, app, logger)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return session.RunBackground(ctx)
		})
	}

	err = g.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}
