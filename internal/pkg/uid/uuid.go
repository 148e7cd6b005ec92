package uid

import "github.com/google/uuid"

// UUID yields time-ordered v7 strings, falling back to v4 if the v7
// generator cannot read entropy.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (*UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
