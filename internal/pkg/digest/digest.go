package digest

import (
	"encoding/hex"

	"github.com/minio/sha256-simd"
)

// Sum returns the hex sha256 of b. Served as a weak ETag on update
// payloads so clients can revalidate cheaply.
func Sum(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
