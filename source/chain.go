package source

import (
	"go.uber.org/zap"

	"github.com/updatekit/updatekit"
)

// Platform identifiers, following GOOS naming for mobile targets.
const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)

// Chain assembles the resolution order for a configuration: custom
// backend first when configured, then the native store oracle on the
// platform that has one, then the public lookup. oracle may be nil.
func Chain(cfg updatekit.Config, app updatekit.AppInfo, oracle StoreOracle, logger *zap.Logger) []updatekit.Source {
	var sources []updatekit.Source

	if cfg.CustomUpdateURL != "" {
		sources = append(sources, NewCustomBackend(cfg, logger))
	}
	if cfg.PlayStoreID != "" && app.Platform == PlatformAndroid && oracle != nil {
		sources = append(sources, NewNativeStore(oracle, logger))
	}
	if cfg.AppStoreID != "" && app.Platform != PlatformAndroid {
		sources = append(sources, NewPublicLookup(cfg, logger))
	}
	return sources
}
