package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMerchantReference_Format(t *testing.T) {
	ref := NewMerchantReference()
	assert.True(t, strings.HasPrefix(ref, "IMPACT360_"), "got %q", ref)
	parts := strings.Split(ref, "_")
	require.Len(t, parts, 3)
	assert.NotEmpty(t, parts[1])
	assert.NotEmpty(t, parts[2])
}

func TestNewMerchantReference_PairwiseDistinct(t *testing.T) {
	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		ref := NewMerchantReference()
		_, dup := seen[ref]
		require.False(t, dup, "duplicate reference %q after %d calls", ref, i)
		seen[ref] = struct{}{}
	}
}
