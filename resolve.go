package updatekit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Source obtains a remote update descriptor. A nil descriptor with a
// nil error means "no update found"; sources swallow transport failures
// and malformed responses themselves so the host degrades gracefully.
type Source interface {
	Name() string
	Resolve(ctx context.Context, req CheckRequest) (*UpdateInfo, error)
}

// NetworkClassifier answers whether the current network path counts as
// WiFi. Hosts on metered platforms supply one; absent a classifier the
// wifi-only policy fails closed.
type NetworkClassifier interface {
	OnWiFi(ctx context.Context) bool
}

// Resolver walks the configured sources in order and returns the first
// descriptor produced, serving a still-valid cached descriptor before
// touching the network at all.
type Resolver struct {
	cfg     Config
	sources []Source
	state   *StateStore
	network NetworkClassifier
	clock   func() time.Time
	logger  *zap.Logger
}

func NewResolver(cfg Config, sources []Source, state *StateStore, network NetworkClassifier, clock func() time.Time, logger *zap.Logger) *Resolver {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		cfg:     cfg.withDefaults(),
		sources: sources,
		state:   state,
		network: network,
		clock:   clock,
		logger:  logger,
	}
}

// Resolve returns the current update descriptor, nil when there is
// none. The only error it ever returns is ErrNetworkPolicy.
func (r *Resolver) Resolve(ctx context.Context, req CheckRequest) (*UpdateInfo, error) {
	if r.cfg.WiFiOnly {
		if r.network == nil || !r.network.OnWiFi(ctx) {
			return nil, ErrNetworkPolicy
		}
	}

	now := r.clock()

	if r.cfg.CachingEnabled() && r.state != nil {
		if entry, ok := r.state.Entry(ctx); ok && entry.Valid(now, r.cfg.CacheTTL()) {
			r.logger.Debug("serving cached descriptor",
				zap.String("latest", entry.Descriptor.LatestVersion.String()),
			)
			return entry.Descriptor, nil
		}
	}

	for _, src := range r.sources {
		info, err := src.Resolve(ctx, req)
		if err != nil {
			// sources contract transient failures away; anything else
			// still degrades to "no update"
			r.logger.Warn("version source failed",
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			continue
		}
		if info == nil {
			continue
		}

		if r.cfg.CachingEnabled() && r.state != nil {
			r.state.PutEntry(ctx, info, now)
		}
		return info, nil
	}

	return nil, nil
}
