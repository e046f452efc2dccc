package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("default when unset", func(t *testing.T) {
		assert.Equal(t, "8000", GetEnv("DOCNEAT_TEST_UNSET", "8000"))
		assert.Equal(t, 200, GetEnv("DOCNEAT_TEST_UNSET", 200))
	})

	t.Run("typed values", func(t *testing.T) {
		t.Setenv("DOCNEAT_TEST_INT", "42")
		t.Setenv("DOCNEAT_TEST_BOOL", "true")
		t.Setenv("DOCNEAT_TEST_FLOAT", "0.5")
		assert.Equal(t, 42, GetEnv("DOCNEAT_TEST_INT", 0))
		assert.True(t, GetEnv("DOCNEAT_TEST_BOOL", false))
		assert.InDelta(t, 0.5, GetEnv("DOCNEAT_TEST_FLOAT", 0.0), 1e-9)
	})

	t.Run("invalid value panics", func(t *testing.T) {
		t.Setenv("DOCNEAT_TEST_INT", "forty-two")
		assert.Panics(t, func() { GetEnv("DOCNEAT_TEST_INT", 0) })
	})
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("DOCNEAT_TEST_LIST", " eng, fra ,,deu")
	assert.Equal(t, []string{"eng", "fra", "deu"}, GetEnvList("DOCNEAT_TEST_LIST", nil))
	assert.Equal(t, []string{"eng"}, GetEnvList("DOCNEAT_TEST_UNSET", []string{"eng"}))
}
