package version

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withBuildVars(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	oldVersion, oldCommit, oldTime := Version, GitCommit, BuildTime
	Version, GitCommit, BuildTime = version, commit, buildTime
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = oldVersion, oldCommit, oldTime
	})
}

func TestLdflagsTakePrecedence(t *testing.T) {
	withBuildVars(t, "v1.2.3", "0123456789abcdef", "2026-01-02T03:04:05Z")

	assert.Equal(t, "v1.2.3", GetVersion())
	assert.Equal(t, "0123456789abcdef", GetGitCommit())
	assert.Equal(t, "v1.2.3 (0123456)", GetShortVersion())
	assert.True(t, IsRelease())
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), GetBuildTime())

	detailed := GetDetailedVersion()
	assert.Contains(t, detailed, "Version: v1.2.3")
	assert.Contains(t, detailed, "Commit: 0123456789abcdef")
	assert.Contains(t, detailed, "Built: 2026-01-02T03:04:05Z")
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{input: "", expected: time.Time{}},
		{input: "unknown", expected: time.Time{}},
		{input: "yesterday", expected: time.Time{}},
		{input: "2026-01-02T03:04:05", expected: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{input: "2026-01-02 03:04:05", expected: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(parseTime(tt.input)))
		})
	}
}

func TestBuildInfo(t *testing.T) {
	withBuildVars(t, "v0.1.0", "unknown", "unknown")

	info := GetBuildInfo()
	assert.Equal(t, "v0.1.0", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
	assert.True(t, info.BuildTime.IsZero())
}
