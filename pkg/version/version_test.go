package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldVersion, oldCommit, oldTime })

	Version, GitCommit, BuildTime = "1.2.0", "unknown", "unknown"
	assert.Equal(t, "1.2.0", String())

	GitCommit, BuildTime = "abc123", "2026-01-01"
	assert.Equal(t, "1.2.0 (abc123, 2026-01-01)", String())
}
