package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "gocrane v"+Version, String())

	commit, built := GitCommit, BuildTime
	t.Cleanup(func() { GitCommit, BuildTime = commit, built })

	GitCommit, BuildTime = "abc1234", "2025-06-01"
	assert.Equal(t, "gocrane v"+Version+" (abc1234, built 2025-06-01)", String())
}
