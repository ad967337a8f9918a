package uuid

import (
	uuid "github.com/gofrs/uuid/v5"
)

// UUID is the resource identifier type used across models and APIs.
type UUID = uuid.UUID

var Nil = uuid.Nil

func NewV4() UUID {
	return uuid.Must(uuid.NewV4())
}

func FromString(s string) (UUID, error) {
	return uuid.FromString(s)
}
