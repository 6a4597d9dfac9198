package library

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPrefixKeyOrder(t *testing.T) {
	ix := NewSearchIndex()
	ix.Insert("Dune", 3)
	ix.Insert("Dune Messiah", 1)
	ix.Insert("Dracula", 2)
	ix.Insert("Emma", 4)

	// Key order: "dracula" < "dune" < "dune messiah".
	assert.Equal(t, []int64{2, 3, 1}, ix.LookupPrefix("d"))
	assert.Equal(t, []int64{3, 1}, ix.LookupPrefix("dune"))
	assert.Empty(t, ix.LookupPrefix("z"))
}

func TestLookupPrefixTieBreak(t *testing.T) {
	ix := NewSearchIndex()
	ix.Insert("Dune", 9)
	ix.Insert("Dune", 2)
	ix.Insert("Dune", 5)

	// Same key: identifiers ascend.
	assert.Equal(t, []int64{2, 5, 9}, ix.LookupPrefix("dune"))
}

func TestNormalization(t *testing.T) {
	ix := NewSearchIndex()
	ix.Insert("CAFÉ Society", 1)
	ix.Insert("café royal", 2) // decomposed é

	got := ix.LookupPrefix("Café")
	require.Len(t, got, 2)
	assert.Equal(t, []int64{2, 1}, got) // "café royal" < "café society"
}

func TestInsertDelete(t *testing.T) {
	ix := NewSearchIndex()
	ix.Insert("Dune", 1)
	ix.Insert("Dune", 1) // idempotent
	require.Equal(t, 1, ix.Len())
	require.True(t, ix.Contains("dune", 1))

	ix.Delete("Dune", 1)
	assert.Equal(t, 0, ix.Len())
	assert.False(t, ix.Contains("dune", 1))
	assert.Empty(t, ix.LookupPrefix("dune"))

	ix.Delete("Dune", 1) // deleting absent entry is a no-op
	assert.Equal(t, 0, ix.Len())
}

func BenchmarkLookupPrefix(b *testing.B) {
	ix := NewSearchIndex()
	for i := 0; i < 10_000; i++ {
		ix.Insert(fmt.Sprintf("title %05d variant", i), int64(i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.LookupPrefix("title 05")
	}
}

// BenchmarkLinearScan is the baseline the ordered index replaces.
func BenchmarkLinearScan(b *testing.B) {
	titles := make([]string, 10_000)
	for i := range titles {
		titles[i] = fmt.Sprintf("title %05d variant", i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var hits int
		for _, title := range titles {
			if len(title) >= 8 && title[:8] == "title 05" {
				hits++
			}
		}
		_ = hits
	}
}
