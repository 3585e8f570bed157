package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoDefault(t *testing.T) {
	info := Info()
	assert.Contains(t, info, "switchboard")
	assert.Contains(t, info, Version)
	assert.Contains(t, info, runtime.GOOS)
	assert.Contains(t, info, runtime.GOARCH)
}

func TestInfoWithCustomValues(t *testing.T) {
	origVersion := Version
	origCommit := Commit
	origDate := Date
	t.Cleanup(func() {
		Version = origVersion
		Commit = origCommit
		Date = origDate
	})

	Version = "0.3.0"
	Commit = "fedcba9876543"
	Date = "2026-08-01"

	info := Info()
	assert.Contains(t, info, "0.3.0")
	assert.Contains(t, info, "fedcba9")
	assert.NotContains(t, info, "fedcba9876543")
	assert.Contains(t, info, "2026-08-01")
}

func TestShort(t *testing.T) {
	assert.Equal(t, "abcdefg", short("abcdefghij"))
	assert.Equal(t, "abc", short("abc"))
	assert.Equal(t, "", short(""))
	assert.Equal(t, "1234567", short("1234567"))
}
