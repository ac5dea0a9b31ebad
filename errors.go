package updatekit

import "errors"

// Only misconfiguration and policy violations surface as errors; every
// transient failure on the check path degrades to "no update" instead.
var (
	ErrConfiguration = errors.New("updatekit: at least one of play store id, app store id or custom update url must be configured")

	ErrNetworkPolicy = errors.New("updatekit: wifi-only policy requires a wifi network path")
)
