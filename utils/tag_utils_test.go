package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTagName(t *testing.T) {
	t.Run("trims and lowercases", func(t *testing.T) {
		assert.Equal(t, "bug", NormalizeTagName("  Bug "))
		assert.Equal(t, "bug", NormalizeTagName("BUG"))
	})

	t.Run("collapses internal whitespace", func(t *testing.T) {
		assert.Equal(t, "bug fix", NormalizeTagName("  Bug  FIX "))
		assert.Equal(t, "bug fix", NormalizeTagName("BUG fix"))
		assert.Equal(t, "a b c", NormalizeTagName("a\tb\nc"))
	})

	t.Run("empty and whitespace-only input", func(t *testing.T) {
		assert.Equal(t, "", NormalizeTagName(""))
		assert.Equal(t, "", NormalizeTagName("   \t\n "))
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, raw := range []string{"  Bug  FIX ", "already normal", "MIXED case\tTABS"} {
			once := NormalizeTagName(raw)
			assert.Equal(t, once, NormalizeTagName(once))
		}
	})
}

func TestDedupeNormalized(t *testing.T) {
	assert.Equal(t, []string{"ui", "bug"}, DedupeNormalized([]string{"ui", "bug", "ui", "bug"}))
	assert.Empty(t, DedupeNormalized(nil))
}
