package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop cached check results and dismissal state",
	RunE:  runClear,
}

func runClear(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(c)
	defer logger.Sync()

	for _, app := range c.Apps {
		session, err := newSession(c, app, logger)
		if err != nil {
			return err
		}
		session.ClearCache(cmd.Context())
		fmt.Printf("%s: state cleared\n", app.PackageName)
	}
	return nil
}
