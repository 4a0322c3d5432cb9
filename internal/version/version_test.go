package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// setBuild overrides the ldflags values and the embedded build info for one test.
func setBuild(t *testing.T, version, commit, date string, bi *debug.BuildInfo) {
	t.Helper()
	origVersion, origCommit, origDate, origRead := Version, Commit, Date, readBuildInfo
	t.Cleanup(func() {
		Version, Commit, Date, readBuildInfo = origVersion, origCommit, origDate, origRead
	})

	Version, Commit, Date = version, commit, date
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func vcsBuild(version, revision, modified string) *debug.BuildInfo {
	return &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/jmylchreest/vibrant", Version: version},
		Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: revision},
			{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
			{Key: "vcs.modified", Value: modified},
		},
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		build   *debug.BuildInfo
		want    string
	}{
		{name: "dev build", version: "dev", commit: unknown, date: unknown, want: "vibrant version dev ("},
		{name: "release", version: "1.2.3", commit: "0123456789abcdef", date: "2026-01-02T03:04:05Z", want: "commit: 01234567, built: 2026-01-02T03:04:05Z"},
		{name: "short commit", version: "1.2.3", commit: "abc", date: "2026-01-02T03:04:05Z", want: "commit: abc,"},
		{name: "go install", version: "dev", commit: unknown, date: unknown, build: vcsBuild("v0.4.0", "fedcba9876543210", "false"), want: "vibrant version v0.4.0 (commit: fedcba98, built: 2026-03-04T05:06:07Z"},
		{name: "dirty tree", version: "dev", commit: unknown, date: unknown, build: vcsBuild("(devel)", "fedcba9876543210", "true"), want: "vibrant version dev (commit: fedcba98-dirty,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuild(t, tt.version, tt.commit, tt.date, tt.build)
			if got := String(); !strings.Contains(got, tt.want) {
				t.Errorf("String() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestGetInfoPrefersLdflags(t *testing.T) {
	setBuild(t, "1.2.3", "0123456789abcdef", "2026-01-02T03:04:05Z", vcsBuild("v0.4.0", "fedcba9876543210", "true"))

	got := GetInfo()
	want := Info{
		Version:   "1.2.3",
		Commit:    "0123456789abcdef",
		Date:      "2026-01-02T03:04:05Z",
		GoVersion: GoVersion,
		Platform:  got.Platform,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetInfo() mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(got.Platform, "/") {
		t.Errorf("Platform = %q, want os/arch", got.Platform)
	}
}

func TestShort(t *testing.T) {
	setBuild(t, "dev", unknown, unknown, vcsBuild("v0.4.0", "fedcba9876543210", "false"))
	if got := Short(); got != "v0.4.0" {
		t.Errorf("Short() = %q, want %q", got, "v0.4.0")
	}

	setBuild(t, "dev", unknown, unknown, nil)
	if got := Short(); got != "dev" {
		t.Errorf("Short() without build info = %q, want %q", got, "dev")
	}
}
