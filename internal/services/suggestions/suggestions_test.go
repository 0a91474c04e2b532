// File: internal/services/suggestions/suggestions_test.go
package suggestions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomReturnsRequestedCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "explicit count", count: 6, want: 6},
		{name: "zero falls back to four", count: 0, want: 4},
		{name: "negative falls back to four", count: -3, want: 4},
		{name: "capped at catalog size", count: 100, want: len(Catalog)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Random(tt.count), tt.want)
		})
	}
}

func TestRandomDrawsDistinctCatalogEntries(t *testing.T) {
	catalog := make(map[string]bool, len(Catalog))
	for _, s := range Catalog {
		catalog[s] = true
	}

	got := Random(len(Catalog))
	seen := make(map[string]bool, len(got))
	for _, s := range got {
		assert.True(t, catalog[s], "suggestion %q is not in the catalog", s)
		assert.False(t, seen[s], "suggestion %q returned twice", s)
		seen[s] = true
	}
}

func TestRandomDoesNotMutateCatalog(t *testing.T) {
	before := append([]string(nil), Catalog...)
	Random(4)
	assert.Equal(t, before, Catalog)
}

func TestCategorizedCoversWholeCatalog(t *testing.T) {
	byTopic := Categorized()
	require.Len(t, byTopic, 6)

	total := 0
	for topic, entries := range byTopic {
		assert.Len(t, entries, 4, "topic %q", topic)
		total += len(entries)
	}
	assert.Equal(t, len(Catalog), total)

	assert.Contains(t, byTopic["substitutions"], "What can I substitute for eggs?")
	assert.Contains(t, byTopic["troubleshooting"], "Why is my dish too salty?")
}
