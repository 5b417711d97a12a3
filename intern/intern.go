/*
Package intern implements a glyph-name interner.

A single Table is shared by every glyph and component loaded within one
Font.Load call, so that identical glyph-name strings, which recur
constantly as component bases and outline point names, are allocated
once. Correctness never depends on the resulting pointer identity, only
on allocation count; this table is a pure optimization.

A single sync.Mutex guards a github.com/derekparker/trie.Trie, which
serves as the lookup structure. A trie collapses shared prefixes
naturally; glyph names frequently share long prefixes ("uni0041",
"uni0041.sc", "uni0041.alt01", ...) that a plain map would store
redundantly.
*/
package intern

import (
	"sync"

	"github.com/derekparker/trie"
)

// Table deduplicates glyph-name strings across a single font load.
// The zero value is not usable; construct with New.
type Table struct {
	mu sync.Mutex
	t  *trie.Trie
}

// New returns an empty, ready-to-use Table.
func New() *Table {
	return &Table{t: trie.New()}
}

// Intern returns the canonical string for name: the first string equal to
// name ever passed to Intern on this Table. Subsequent calls with an
// equal (but distinct) string return the same underlying string value.
func (tb *Table) Intern(name string) string {
	if name == "" {
		return name
	}
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if node, ok := tb.t.Find(name); ok {
		if canon, ok := node.Meta().(string); ok {
			return canon
		}
	}
	tb.t.Add(name, name)
	return name
}

// Len reports how many distinct names have been interned so far.
func (tb *Table) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.t.Keys())
}
