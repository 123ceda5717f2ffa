package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"dev", "dev"},
		{"1.2.3", "v1.2.3"},
		{"v1.2.3", "v1.2.3"},
	}
	for _, tt := range tests {
		t.Run("version "+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatVersion(tt.in))
		})
	}
}

func TestSetVersionInfo(t *testing.T) {
	originalVersion, originalCommit, originalDate := version, commit, date
	defer func() {
		version, commit, date = originalVersion, originalCommit, originalDate
	}()

	SetVersionInfo("1.0.0", "abc123", "2024-01-01")

	assert.Equal(t, "1.0.0", GetVersion())
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2024-01-01", date)
}

func TestVersionCommand(t *testing.T) {
	originalVersion, originalCommit := version, commit
	defer func() { version, commit = originalVersion, originalCommit }()
	SetVersionInfo("2.1.0", "deadbeef", "2024-06-01")

	ta := newTestApp("")
	// An invalid config must not break version output.
	require.NoError(t, ta.run(t, "version", "--color", "rainbow"))

	out := ta.out.String()
	assert.Contains(t, out, "hostmon v2.1.0\n")
	assert.Contains(t, out, "commit: deadbeef\n")
	assert.Contains(t, out, "os/arch: "+runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionCommandShort(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()
	version = "3.0.0"

	ta := newTestApp("")
	require.NoError(t, ta.run(t, "version", "--short"))
	assert.Equal(t, "3.0.0\n", ta.out.String())

	versionShort = false
}
