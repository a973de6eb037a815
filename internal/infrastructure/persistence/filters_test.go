package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeOrderColumn(t *testing.T) {
	t.Run("accepts plain identifiers", func(t *testing.T) {
		assert.Equal(t, "created_at", sanitizeOrderColumn("created_at"))
		assert.Equal(t, "name", sanitizeOrderColumn("name"))
		assert.Equal(t, "next_number", sanitizeOrderColumn("Next_Number"))
		assert.Equal(t, "code", sanitizeOrderColumn("  code  "))
	})

	t.Run("rejects injection attempts", func(t *testing.T) {
		assert.Equal(t, "", sanitizeOrderColumn("name; DROP TABLE customers"))
		assert.Equal(t, "", sanitizeOrderColumn("name--"))
		assert.Equal(t, "", sanitizeOrderColumn("1=1"))
		assert.Equal(t, "", sanitizeOrderColumn("name desc"))
		assert.Equal(t, "", sanitizeOrderColumn(`"name"`))
	})

	t.Run("rejects empty and malformed input", func(t *testing.T) {
		assert.Equal(t, "", sanitizeOrderColumn(""))
		assert.Equal(t, "", sanitizeOrderColumn("_private"))
		assert.Equal(t, "", sanitizeOrderColumn("9column"))
	})
}
