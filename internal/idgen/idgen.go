// Package idgen generates sequential, zero-padded IDs per prefix series.
//
// A single Generator is shared by every caller that needs IDs; series
// counters are independent and guarded by one mutex.
package idgen

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Defaults used by New when no options are given.
const (
	DefaultWidth     = 4
	DefaultSeparator = "-"
)

// Series is the counter state of one prefix.
type Series struct {
	Prefix  string
	Current int
}

// Generator hands out IDs of the form PREFIX<sep>NNNN.
type Generator struct {
	mu     sync.Mutex
	width  int
	sep    string
	series map[string]int
}

// Option configures a Generator.
type Option func(*Generator)

// WithWidth sets the zero-padded width of the numeric part.
func WithWidth(w int) Option {
	return func(g *Generator) {
		if w > 0 {
			g.width = w
		}
	}
}

// WithSeparator sets the text between prefix and number.
func WithSeparator(sep string) Option {
	return func(g *Generator) { g.sep = sep }
}

// New creates a generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		width:  DefaultWidth,
		sep:    DefaultSeparator,
		series: make(map[string]int),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next advances the series for prefix and returns the new ID.
// The prefix is trimmed and upper-cased.
func (g *Generator) Next(prefix string) string {
	p := normalize(prefix)

	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.series[p] + 1
	g.series[p] = n
	return g.format(p, n)
}

// Current returns the last issued number for prefix, 0 if none.
func (g *Generator) Current(prefix string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.series[normalize(prefix)]
}

// SetStart sets the counter of a series so the next ID is value+1.
// Negative values are clamped to zero.
func (g *Generator) SetStart(prefix string, value int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.series[normalize(prefix)] = max(0, value)
}

// State returns every series sorted by prefix.
func (g *Generator) State() []Series {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Series, 0, len(g.series))
	for p, n := range g.series {
		out = append(out, Series{Prefix: p, Current: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

func (g *Generator) format(prefix string, n int) string {
	return fmt.Sprintf("%s%s%0*d", prefix, g.sep, g.width, n)
}

func normalize(prefix string) string {
	return strings.ToUpper(strings.TrimSpace(prefix))
}
