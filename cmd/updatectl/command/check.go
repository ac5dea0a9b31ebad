package command

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// exit code when at least one application has an update available
const exitUpdateAvailable = 10

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one update check for every configured application",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(c)
	defer logger.Sync()

	var (
		mu        sync.Mutex
		available int
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	for _, app := range c.Apps {
		app := app
		g.Go(func() error {
			session, err := newSession(c, app, logger)
			if err != nil {
				return err
			}
			res, err := session.Check(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", app.PackageName, err)
			}

			mu.Lock()
			defer mu.Unlock()
			if res.Info != nil && res.Info.UpdateAvailable() {
				available++
				fmt.Printf("%s: update available %s -> %s (%s)\n",
					app.PackageName,
					res.Info.CurrentVersion, res.Info.LatestVersion,
					res.Info.Kind(),
				)
				if res.Info.Forced() {
					fmt.Printf("%s: update is mandatory\n", app.PackageName)
				}
				if res.Info.ReleaseNotes != "" {
					fmt.Printf("%s: %s\n", app.PackageName, res.Info.ReleaseNotes)
				}
			} else {
				fmt.Printf("%s: up to date\n", app.PackageName)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if available > 0 {
		os.Exit(exitUpdateAvailable)
	}
	return nil
}
