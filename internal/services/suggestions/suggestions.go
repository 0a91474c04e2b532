// File: internal/services/suggestions/suggestions.go

// Package suggestions holds the canned conversation starters shown under
// the chat input and picks random subsets of them.
package suggestions

import "math/rand"

// Catalog groups run in blocks of four: substitutions, techniques,
// modifications, timing & storage, serving, troubleshooting.
var Catalog = []string{
	// Substitutions
	"What can I substitute for eggs?",
	"Can I use olive oil instead of butter?",
	"What's a good dairy-free alternative?",
	"How can I make this vegan?",

	// Techniques
	"How do I know when it's done?",
	"What's the best way to dice onions?",
	"Can I make this in an air fryer?",
	"How do I prevent it from sticking?",

	// Modifications
	"How can I make this spicier?",
	"Can I add more vegetables?",
	"How do I reduce the calories?",
	"Can this be made gluten-free?",

	// Timing & Storage
	"How long does this take to cook?",
	"Can I prepare this ahead of time?",
	"How should I store leftovers?",
	"Can I freeze this dish?",

	// Serving
	"What should I serve this with?",
	"How many servings does this make?",
	"What wine pairs well with this?",
	"Can I double the recipe?",

	// Troubleshooting
	"Why is my dish too salty?",
	"How do I fix overcooked pasta?",
	"What if I don't have an oven?",
	"Can I use a different pan size?",
}

// Random returns count distinct suggestions in shuffled order. count <= 0
// falls back to 4; counts past the catalog size return the whole catalog.
func Random(count int) []string {
	if count <= 0 {
		count = 4
	}
	if count > len(Catalog) {
		count = len(Catalog)
	}
	shuffled := append([]string(nil), Catalog...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}

// Categorized returns the catalog keyed by topic.
func Categorized() map[string][]string {
	return map[string][]string{
		"substitutions":   Catalog[0:4],
		"techniques":      Catalog[4:8],
		"modifications":   Catalog[8:12],
		"timing":          Catalog[12:16],
		"serving":         Catalog[16:20],
		"troubleshooting": Catalog[20:24],
	}
}
