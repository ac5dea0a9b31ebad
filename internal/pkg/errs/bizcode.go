package errs

const (
	BizCodeInvalidParams = 1001

	BizCodeReleaseNotFound        = 8001
	BizCodeReleaseInvalidPlatform = 8002
	BizCodeReleaseNameConflict    = 8003
	BizCodeReleaseUnparsable      = 8004
)
