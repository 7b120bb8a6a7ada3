package id

import "github.com/google/uuid"

// Generator creates opaque public IDs for rows created outside of
// provider synchronization (favorites, sync runs).
type Generator interface {
	NewID() string
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
