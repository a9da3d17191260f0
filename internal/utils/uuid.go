package utils

import "github.com/google/uuid"

// UUIDGenerator issues conversation and connection ids. Ids are UUIDv7, so
// they sort by creation time in the logs.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new id. It falls back to a random UUIDv4 if the v7
// clock source fails.
func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
