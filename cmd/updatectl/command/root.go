// Package command provides the updatectl sub-commands: one-shot update
// checks, a foreground watch loop and cache maintenance for the
// applications configured in a YAML file.
//
//	updatectl check [-c /path/of/config.yaml]
//	updatectl watch [-c /path/of/config.yaml]
//	updatectl clear [-c /path/of/config.yaml]
package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/updatekit/updatekit"
	"github.com/updatekit/updatekit/source"
	"github.com/updatekit/updatekit/store"
	"github.com/updatekit/updatekit/store/filestore"
	"github.com/updatekit/updatekit/store/redisstore"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "updatectl",
	Short: "Update checks for configured applications",
	Long: `updatectl runs the updatekit check flow from the command line.
Applications are declared in a YAML file; each one names its package,
platform and installed version plus at least one update source (a
custom update endpoint or an app store identifier). Check results and
dismissal state persist under the configured state directory.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to the config file")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(clearCmd)
}

type appConfig struct {
	PackageName    string `mapstructure:"package_name"`
	Platform       string `mapstructure:"platform"`
	CurrentVersion string `mapstructure:"current_version"`
	BuildNumber    string `mapstructure:"build_number"`

	UpdateURL  string            `mapstructure:"update_url"`
	AppStoreID string            `mapstructure:"app_store_id"`
	Headers    map[string]string `mapstructure:"headers"`

	Region    string `mapstructure:"region"`
	TestGroup string `mapstructure:"test_group"`

	CheckIntervalHours uint `mapstructure:"check_interval_hours"`
	CacheHours         uint `mapstructure:"cache_hours"`
}

type ctlConfig struct {
	StateDir string `mapstructure:"state_dir"`
	// RedisAddr switches state persistence from the state directory to
	// redis, for hosts that share check state across a fleet.
	RedisAddr     string      `mapstructure:"redis_addr"`
	RedisPassword string      `mapstructure:"redis_password"`
	LogLevel      string      `mapstructure:"log_level"`
	Apps          []appConfig `mapstructure:"apps"`
}

func loadConfig() (*ctlConfig, error) {
	v := viper.New()
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.SetConfigName("updatectl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	c := new(ctlConfig)
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	if c.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		c.StateDir = filepath.Join(home, ".local", "state", "updatectl")
	}
	return c, nil
}

func newLogger(c *ctlConfig) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if c.LogLevel != "" {
		if level, err := zap.ParseAtomicLevel(c.LogLevel); err == nil {
			cfg.Level = level
		}
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newSession wires one configured application into a library session.
func newSession(c *ctlConfig, app appConfig, logger *zap.Logger) (*updatekit.Session, error) {
	cfg := updatekit.Config{
		CustomUpdateURL:              app.UpdateURL,
		AppStoreID:                   app.AppStoreID,
		CustomHeaders:                app.Headers,
		RegionCode:                   app.Region,
		TestGroup:                    app.TestGroup,
		BackgroundCheckIntervalHours: app.CheckIntervalHours,
		CacheDurationHours:           app.CacheHours,
		EnableBackgroundCheck:        true,
	}
	info := updatekit.AppInfo{
		PackageName:    app.PackageName,
		Platform:       app.Platform,
		CurrentVersion: app.CurrentVersion,
		BuildNumber:    app.BuildNumber,
	}

	kv, err := newStateStore(c, app)
	if err != nil {
		return nil, err
	}

	sources := source.Chain(cfg, info, nil, logger)
	return updatekit.NewSession(cfg, info, kv, sources, nil,
		updatekit.WithLogger(logger.With(zap.String("package", app.PackageName))),
	)
}

func newStateStore(c *ctlConfig, app appConfig) (store.Store, error) {
	if c.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
		})
		return redisstore.New(rdb, app.PackageName), nil
	}
	return filestore.Open(filepath.Join(c.StateDir, app.PackageName+".json"))
}
