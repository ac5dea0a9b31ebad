package source

import (
	"context"

	"go.uber.org/zap"

	"github.com/updatekit/updatekit"
	"github.com/updatekit/updatekit/version"
)

// OracleAnswer is what a native store SDK reports: only a version code
// and its own verdict on whether something newer exists.
type OracleAnswer struct {
	UpdateAvailable  bool
	VersionCode      int64
	StalenessDays    int
	ImmediateAllowed bool
	FlexibleAllowed  bool
}

// StoreOracle is the capability-typed collaborator wrapping a platform
// in-app-update SDK.
type StoreOracle interface {
	Check(ctx context.Context, packageName string) (OracleAnswer, error)
}

// NativeStore adapts a StoreOracle into a version source. The store
// exposes only a version code, so both versions keep their numeric
// triple at zero with the code in the build slot, and availability is
// the oracle's verdict rather than a comparison.
type NativeStore struct {
	oracle StoreOracle
	logger *zap.Logger
}

func NewNativeStore(oracle StoreOracle, logger *zap.Logger) *NativeStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NativeStore{
		oracle: oracle,
		logger: logger,
	}
}

func (n *NativeStore) Name() string {
	return "native_store"
}

func (n *NativeStore) Resolve(ctx context.Context, req updatekit.CheckRequest) (*updatekit.UpdateInfo, error) {
	if n.oracle == nil {
		return nil, nil
	}

	answer, err := n.oracle.Check(ctx, req.PackageName)
	if err != nil {
		n.logger.Debug("store oracle failed", zap.Error(err))
		return nil, nil
	}

	current := version.Version{Build: req.BuildNumber}
	available := answer.UpdateAvailable

	return &updatekit.UpdateInfo{
		LatestVersion:   version.FromCode(answer.VersionCode),
		CurrentVersion:  current,
		OracleAvailable: &available,
		Metadata: map[string]any{
			"staleness_days":    answer.StalenessDays,
			"immediate_allowed": answer.ImmediateAllowed,
			"flexible_allowed":  answer.FlexibleAllowed,
		},
	}, nil
}
