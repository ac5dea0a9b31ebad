package model

const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
	// PlatformAny marks a release that applies to every platform.
	PlatformAny = "any"
)

func ValidPlatform(p string) bool {
	switch p {
	case PlatformAndroid, PlatformIOS, PlatformAny:
		return true
	default:
		return false
	}
}
