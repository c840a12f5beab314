package services

import "github.com/google/uuid"

type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// IDFunc adapts a plain function, handy in tests.
type IDFunc func() string

func (f IDFunc) NewID() string {
	return f()
}
