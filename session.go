package updatekit

import (
	"context"
	"time"

	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/updatekit/updatekit/store"
)

// CheckState is where a single check-and-present cycle ended up.
type CheckState string

const (
	StateIdle            CheckState = "idle"
	StateChecking        CheckState = "checking"
	StateNoUpdate        CheckState = "no_update"
	StateUpdateFound     CheckState = "update_found"
	StateSuppressed      CheckState = "suppressed"
	StatePresented       CheckState = "presented"
	StateAccepted        CheckState = "accepted"
	StateDeferred        CheckState = "deferred"
	StateDismissed       CheckState = "dismissed"
	StateUpdateInitiated CheckState = "update_initiated"
)

// Outcome is the user's choice as reported by the presentation
// collaborator. The core sees nothing beyond these three.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeDeferred
	OutcomeDismissed
)

// Presenter hands a descriptor to the host's presentation layer and
// reports the user's choice. When forced is true the presenter must not
// offer defer or dismiss controls; that is enforced by omission there,
// not by this layer.
type Presenter interface {
	Present(ctx context.Context, info *UpdateInfo, forced bool) (Outcome, error)
}

// InstallExecutor starts the actual update once accepted, via an in-app
// update flow or a store-page navigation fallback. Its result feeds
// analytics only; it never rewinds the decision state machine.
type InstallExecutor interface {
	Execute(ctx context.Context, info *UpdateInfo) error
}

// CheckResult is the terminal state of one cycle plus the descriptor
// that drove it, nil when none was found.
type CheckResult struct {
	State CheckState
	Info  *UpdateInfo
}

// Session runs update checks for one host application. It is an
// explicitly constructed object owned by the host, not a process-wide
// singleton; constructing a second session is well defined.
type Session struct {
	cfg       Config
	app       AppInfo
	resolver  *Resolver
	state     *StateStore
	presenter Presenter
	installer InstallExecutor
	clock     func() time.Time
	logger    *zap.Logger
}

type Option func(*Session)

func WithPresenter(p Presenter) Option {
	return func(s *Session) { s.presenter = p }
}

func WithInstallExecutor(e InstallExecutor) Option {
	return func(s *Session) { s.installer = e }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithClock(clock func() time.Time) Option {
	return func(s *Session) { s.clock = clock }
}

// NewSession validates cfg, wires the persisted state onto kv and
// builds the resolver over sources in their given order. kv may be nil
// for a stateless session; sources come from the source package or from
// the host.
func NewSession(cfg Config, app AppInfo, kv store.Store, sources []Source, network NetworkClassifier, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	s := &Session{
		cfg:    cfg,
		app:    app,
		clock:  time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	if kv != nil {
		s.state = NewStateStore(kv, s.logger)
	}
	s.resolver = NewResolver(cfg, sources, s.state, network, s.clock, s.logger)

	// persisted copy for background task reuse
	if s.state != nil {
		s.state.SaveConfig(context.Background(), cfg)
	}

	return s, nil
}

// Config returns the effective configuration with defaults applied.
func (s *Session) Config() Config {
	return s.cfg
}

func (s *Session) request() CheckRequest {
	return CheckRequest{
		Platform:       s.app.Platform,
		CurrentVersion: s.app.CurrentVersion,
		BuildNumber:    s.app.BuildNumber,
		PackageName:    s.app.PackageName,
		Region:         s.cfg.RegionCode,
		TestGroup:      s.cfg.TestGroup,
	}
}

// Check runs one full check-and-present cycle and returns its terminal
// state. The only error it surfaces is ErrNetworkPolicy; every other
// failure lands in StateNoUpdate.
func (s *Session) Check(ctx context.Context) (*CheckResult, error) {
	s.emit("check_started", map[string]any{
		"package": s.app.PackageName,
	})

	info, err := s.resolver.Resolve(ctx, s.request())
	if s.state != nil {
		s.state.TouchLastCheck(ctx, s.clock())
	}
	if err != nil {
		s.emit("check_failed", map[string]any{"reason": err.Error()})
		return nil, err
	}

	if info == nil || !info.UpdateAvailable() {
		s.emit("no_update", nil)
		return &CheckResult{State: StateNoUpdate, Info: info}, nil
	}

	forced := info.Forced()
	s.emit("update_available", map[string]any{
		"latest": info.LatestVersion.String(),
		"kind":   string(info.Kind()),
		"forced": forced,
	})

	if !forced && s.state != nil {
		if s.state.Dismissal(ctx).Suppresses(info.LatestVersion.String()) {
			s.emit("update_suppressed", map[string]any{
				"latest": info.LatestVersion.String(),
			})
			return &CheckResult{State: StateSuppressed, Info: info}, nil
		}
	}

	if s.presenter == nil {
		return &CheckResult{State: StateUpdateFound, Info: info}, nil
	}

	return s.present(ctx, info, forced)
}

func (s *Session) present(ctx context.Context, info *UpdateInfo, forced bool) (*CheckResult, error) {
	s.emit("update_presented", map[string]any{
		"latest": info.LatestVersion.String(),
		"forced": forced,
	})

	outcome, err := s.presenter.Present(ctx, info, forced)
	if err != nil {
		// a broken presentation layer counts as a dismissal-free no-op
		s.logger.Warn("presenter failed", zap.Error(err))
		return &CheckResult{State: StatePresented, Info: info}, nil
	}

	switch outcome {
	case OutcomeAccepted:
		s.emit("update_accepted", nil)
		return s.initiate(ctx, info)

	case OutcomeDeferred:
		s.emit("update_deferred", nil)
		if !forced {
			s.recordDismissal(ctx, info)
		}
		return &CheckResult{State: StateDeferred, Info: info}, nil

	default:
		s.emit("update_dismissed", nil)
		if !forced {
			s.recordDismissal(ctx, info)
		}
		return &CheckResult{State: StateDismissed, Info: info}, nil
	}
}

func (s *Session) initiate(ctx context.Context, info *UpdateInfo) (*CheckResult, error) {
	if s.installer == nil {
		return &CheckResult{State: StateAccepted, Info: info}, nil
	}
	if err := s.installer.Execute(ctx, info); err != nil {
		s.logger.Warn("update execution failed", zap.Error(err))
		s.emit("install_failed", map[string]any{"reason": err.Error()})
	} else {
		s.emit("install_started", nil)
	}
	return &CheckResult{State: StateUpdateInitiated, Info: info}, nil
}

func (s *Session) recordDismissal(ctx context.Context, info *UpdateInfo) {
	if s.state == nil {
		return
	}
	s.state.RecordDismissal(ctx, info.LatestVersion.String())
}

// ShouldCheckNow applies the background-interval gate against the
// persisted last-check timestamp.
func (s *Session) ShouldCheckNow(ctx context.Context) bool {
	if s.state == nil {
		return true
	}
	return ShouldCheck(s.state.LastCheck(ctx), s.cfg.BackgroundInterval(), s.clock())
}

// Pending returns the cached descriptor a background check may have
// left behind, if it is still valid and actually announces an update.
// This is the only channel from background checks to the foreground.
func (s *Session) Pending(ctx context.Context) (*UpdateInfo, bool) {
	if s.state == nil {
		return nil, false
	}
	entry, ok := s.state.Entry(ctx)
	if !ok || !entry.Valid(s.clock(), s.cfg.CacheTTL()) {
		return nil, false
	}
	if !entry.Descriptor.UpdateAvailable() {
		return nil, false
	}
	return entry.Descriptor, true
}

// ClearCache drops the cached descriptor and dismissal state.
func (s *Session) ClearCache(ctx context.Context) {
	if s.state != nil {
		s.state.Clear(ctx)
	}
}

func (s *Session) emit(event string, data map[string]any) {
	if !s.cfg.EnableAnalytics || s.cfg.Analytics == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	data["event_id"] = ksuid.New().String()
	data["package"] = s.app.PackageName
	s.cfg.Analytics(event, data)
}
