package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorsOption(t *testing.T) {
	ctx := context.Background()

	all := corsOption(ctx, Configuration{})
	assert.True(t, all.AllowAllOrigins)
	assert.Empty(t, all.AllowOrigins)

	wildcard := corsOption(ctx, Configuration{CorsAllowOrigins: []string{"*"}})
	assert.True(t, wildcard.AllowAllOrigins)

	restricted := corsOption(ctx, Configuration{CorsAllowOrigins: []string{
		"https://app.docneat.io/some/path", "app.docneat.io", "http://localhost:3000",
	}})
	assert.False(t, restricted.AllowAllOrigins)
	assert.Equal(t, []string{"https://app.docneat.io", "http://localhost:3000"}, restricted.AllowOrigins)
}
