package updatekit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// backgroundTick bounds how often the interval gate is re-evaluated.
// The gate itself, not the ticker, decides whether a check runs.
const backgroundTick = time.Hour

// RunBackground periodically performs silent checks until ctx is
// cancelled. Results are written only to the persisted store; the
// foreground picks them up through Pending on its next activation.
// Returns immediately when background checking is not enabled.
func (s *Session) RunBackground(ctx context.Context) error {
	if !s.cfg.EnableBackgroundCheck {
		return nil
	}

	tick := backgroundTick
	if interval := s.cfg.BackgroundInterval(); interval < tick {
		tick = interval
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	s.checkSilently(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.checkSilently(ctx)
		}
	}
}

// checkSilently resolves and caches without any presentation. Policy
// errors are logged, not propagated: there is nobody to show them to.
func (s *Session) checkSilently(ctx context.Context) {
	if !s.ShouldCheckNow(ctx) {
		return
	}

	info, err := s.resolver.Resolve(ctx, s.request())
	if s.state != nil {
		s.state.TouchLastCheck(ctx, s.clock())
	}
	if err != nil {
		s.logger.Debug("background check skipped", zap.Error(err))
		return
	}
	if info != nil && info.UpdateAvailable() {
		s.logger.Info("background check found update",
			zap.String("latest", info.LatestVersion.String()),
		)
	}
}
