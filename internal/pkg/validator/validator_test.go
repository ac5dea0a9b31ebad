package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type publishForm struct {
	VersionName string `validate:"required,version"`
	Platform    string `validate:"required,oneof=android ios any"`
	ReleaseDate string `validate:"omitempty,rfc3339"`
}

func TestStructValid(t *testing.T) {
	details, ok := Struct(publishForm{
		VersionName: "1.2.0",
		Platform:    "android",
		ReleaseDate: "2024-01-15T10:30:00Z",
	})
	require.True(t, ok)
	require.Empty(t, details)
}

func TestStructVersionRule(t *testing.T) {
	details, ok := Struct(publishForm{
		VersionName: "1.2.3.4",
		Platform:    "ios",
	})
	require.False(t, ok)
	require.Len(t, details, 1)
	require.Equal(t, "VersionName", details[0].Field)
	require.Equal(t, "version", details[0].Violation)
	require.NotEmpty(t, details[0].Message)
}

func TestStructPlatformRule(t *testing.T) {
	_, ok := Struct(publishForm{
		VersionName: "1.2.0",
		Platform:    "windows",
	})
	require.False(t, ok)
}

func TestStructRFC3339Rule(t *testing.T) {
	_, ok := Struct(publishForm{
		VersionName: "1.2.0",
		Platform:    "android",
		ReleaseDate: "15-01-2024",
	})
	require.False(t, ok)
}
