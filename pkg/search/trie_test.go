package search_test

import (
	"testing"

	"lintang/bearmaps/pkg/datastructure"
	"lintang/bearmaps/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "soda hall", search.Normalize("Soda Hall"))
	assert.Equal(t, "peets coffee  tea", search.Normalize("Peet's Coffee & Tea"))
	assert.Equal(t, "caf", search.Normalize("Café"))
	assert.Equal(t, "", search.Normalize("1234!?"))
}

func TestTrie(t *testing.T) {
	trie := search.NewTrie()
	trie.Index("Soda Hall", datastructure.NewLocation(1, -122.2587, 37.8756, "Soda Hall"))
	trie.Index("Sodexo", datastructure.NewLocation(2, -122.2601, 37.8701, "Sodexo"))
	trie.Index("Peet's Coffee & Tea", datastructure.NewLocation(3, -122.2596, 37.8797, "Peet's Coffee & Tea"))
	trie.Index("Peet's Coffee & Tea", datastructure.NewLocation(4, -122.2690, 37.8690, "Peet's Coffee & Tea"))

	t.Run("prefix returns every longer name sharing it", func(t *testing.T) {
		assert.Equal(t, []string{"Soda Hall", "Sodexo"}, trie.PrefixLookup("sod"))
		assert.Equal(t, []string{"Soda Hall"}, trie.PrefixLookup("SODA"))
		assert.Equal(t, []string{"Peet's Coffee & Tea"}, trie.PrefixLookup("peets"))
	})

	t.Run("unknown prefix is empty not an error", func(t *testing.T) {
		assert.Empty(t, trie.PrefixLookup("zzz"))
		assert.NotNil(t, trie.PrefixLookup("zzz"))
	})

	t.Run("exact lookup is case and punctuation insensitive", func(t *testing.T) {
		locs := trie.ExactLookup("SODA hall")
		require.Len(t, locs, 1)
		assert.Equal(t, datastructure.NewLocation(1, -122.2587, 37.8756, "Soda Hall"), locs[0])
	})

	t.Run("same name at two locations keeps both records", func(t *testing.T) {
		locs := trie.ExactLookup("peets coffee  tea")
		require.Len(t, locs, 2)
		assert.Equal(t, int64(3), locs[0].ID)
		assert.Equal(t, int64(4), locs[1].ID)
	})

	t.Run("prefix node without exact match has no locations", func(t *testing.T) {
		assert.Empty(t, trie.ExactLookup("sod"))
		assert.False(t, trie.Contains("sod"))
		assert.True(t, trie.Contains("sodexo"))
	})

	t.Run("returned records are copies", func(t *testing.T) {
		locs := trie.ExactLookup("soda hall")
		locs[0].Name = "changed"
		assert.Equal(t, "Soda Hall", trie.ExactLookup("soda hall")[0].Name)
	})

	t.Run("prefix lookup is monotone", func(t *testing.T) {
		words := []string{"", "s", "so", "sod", "soda", "soda ", "soda h"}
		for i := 1; i < len(words); i++ {
			shorter := trie.PrefixLookup(words[i-1])
			for _, name := range trie.PrefixLookup(words[i]) {
				assert.Contains(t, shorter, name)
			}
		}
	})

	t.Run("keys and size", func(t *testing.T) {
		assert.Len(t, trie.Keys(), 3)
		assert.Equal(t, 4, trie.Size())
	})
}
