package refno

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	memberID := New(PrefixMember, 8)
	assert.Regexp(t, regexp.MustCompile(`^MEM[0-9A-F]{8}$`), memberID)

	txID := New(PrefixTransaction, 16)
	assert.Len(t, txID, 19)
	assert.LessOrEqual(t, len(txID), 20)
}

func TestNewCapsLength(t *testing.T) {
	assert.Len(t, New("X", 100), 33)
}

func TestNewIsRandom(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New(PrefixAccount, 12)
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
}
