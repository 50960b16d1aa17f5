package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	old := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() { readBuildInfo = old })
}

func TestInfoFromBuildSettings(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.25.6",
		Main:      debug.Module{Path: "github.com/a-marczewski/kabaddibot"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, true)

	info := Info()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, "github.com/a-marczewski/kabaddibot", info.Module)
	assert.Equal(t, "go1.25.6", info.GoVersion)
	assert.True(t, info.Modified)
	assert.Equal(t, "v"+Version+" (0123456789ab, modified)", info.Short())

	out := info.String()
	assert.Contains(t, out, "Commit:   0123456789abcdef0123")
	assert.Contains(t, out, "Built:    2026-10-01T12:00:00Z")
}

func TestInfoWithoutBuildInfo(t *testing.T) {
	withBuildInfo(t, nil, false)

	info := Info()
	assert.Equal(t, BuildInfo{Version: Version}, info)
	assert.Equal(t, "v"+Version, info.Short())
	assert.NotContains(t, info.String(), "Commit")
}

func TestShortTrimsPrefix(t *testing.T) {
	assert.Equal(t, "v1.2.3", BuildInfo{Version: "v1.2.3"}.Short())
	assert.Equal(t, "v1.2.3 (abc)", BuildInfo{Version: "1.2.3", Revision: "abc"}.Short())
}
