package idgen

import "github.com/google/uuid"

// Generator provides identifier generation that can be mocked for testing
type Generator interface {
	// NewID returns a new unique identifier with the given prefix
	NewID(prefix string) string
}

// UUIDGenerator implements Generator using random UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns prefix + a random UUID
func (g *UUIDGenerator) NewID(prefix string) string {
	return prefix + uuid.NewString()
}
