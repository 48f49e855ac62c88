package mocks

import (
	"fmt"

	"github.com/calebmcg/deadeye/internal/dependencies/idgen"
)

// MockIDGen is a mock implementation of Generator for testing.
// Queued results are returned first; once exhausted it falls back to
// deterministic sequential ids so tests don't need to queue every call.
type MockIDGen struct {
	// Results is a queue of ids to return from NewID
	Results []string
	index   int
	seq     int
}

// Ensure MockIDGen implements Generator
var _ idgen.Generator = (*MockIDGen)(nil)

// NewMockIDGen creates a new MockIDGen
func NewMockIDGen() *MockIDGen {
	return &MockIDGen{}
}

// NewID returns the next queued id, or a sequential fallback
func (g *MockIDGen) NewID(prefix string) string {
	if g.index < len(g.Results) {
		result := g.Results[g.index]
		g.index++
		return result
	}
	g.seq++
	return fmt.Sprintf("%s%08d", prefix, g.seq)
}

// Queue adds ids to the result queue
func (g *MockIDGen) Queue(ids ...string) {
	g.Results = append(g.Results, ids...)
}

// Reset clears all queued results and the sequential counter
func (g *MockIDGen) Reset() {
	g.Results = nil
	g.index = 0
	g.seq = 0
}
