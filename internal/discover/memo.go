package discover

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/config"
)

// Memo caches extracted candidates across generation passes. A declaration
// is re-extracted when its identity, directives, imports or declared kind
// change, or when its type arguments resolve differently. It is safe for
// concurrent use.
type Memo struct {
	mu      sync.Mutex
	entries map[string]memoEntry
}

type memoEntry struct {
	candidate *Candidate
	ok        bool
}

// NewMemo creates an empty memo.
func NewMemo() *Memo {
	return &Memo{entries: make(map[string]memoEntry)}
}

// Extract is Extract with memoization.
func (m *Memo) Extract(decl *analyze.Decl, oracle analyze.Oracle) (*Candidate, bool) {
	if !IsStructuralCandidate(decl) {
		return nil, false
	}

	key := memoKey(decl, oracle)

	m.mu.Lock()
	e, hit := m.entries[key]
	m.mu.Unlock()

	if hit && (!e.ok || resolvesAlike(e.candidate, oracle)) {
		return e.candidate, e.ok
	}

	c, ok := Extract(decl, oracle)

	m.mu.Lock()
	m.entries[key] = memoEntry{candidate: c, ok: ok}
	m.mu.Unlock()

	return c, ok
}

// Len returns the number of memoized declarations.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// resolvesAlike reports whether the type arguments of c still resolve to
// what they did when c was extracted.
func resolvesAlike(c *Candidate, oracle analyze.Oracle) bool {
	raw, _ := markerArgs(c.Marker)
	local, _ := config.Resolve(raw, c.Decl, oracle)

	return local.Underlying == c.Local.Underlying && local.ValidationError == c.Local.ValidationError
}

func memoKey(decl *analyze.Decl, oracle analyze.Oracle) string {
	var b strings.Builder

	b.WriteString(string(decl.ID))
	b.WriteByte(0)
	b.WriteString(kindOf(decl, oracle).String())

	for _, d := range decl.Directives {
		b.WriteByte(0)
		b.WriteString(d.Name)
		b.WriteByte(' ')
		b.WriteString(d.Args)
	}

	for _, name := range slices.Sorted(maps.Keys(decl.Imports)) {
		b.WriteByte(0)
		b.WriteString(name + "=" + decl.Imports[name])
	}

	return b.String()
}
