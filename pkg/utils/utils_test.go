package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenUniqIDStr(t *testing.T) {
	SetupIDWorker(1)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenUniqIDStr()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "id %s generated twice", id)
		seen[id] = true
	}
}

func TestRandomStr(t *testing.T) {
	s := RandomStr(32)
	assert.Len(t, s, 32)
}

func TestRandom(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := Random(1, 3)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 3)
	}
}
