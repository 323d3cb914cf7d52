// Package domain contains core concepts of the mute system.
// This file defines the Subject identity checked for mute status.
// No runtime, network, or storage logic should be added here.
package domain

import (
	"fmt"
	"svc-mute/errors"

	"github.com/google/uuid"
)

// Subject is the immutable identity of a user whose mute status is checked.
type Subject struct {
	ID uuid.UUID
}

func NewSubject(id uuid.UUID) Subject {
	return Subject{ID: id}
}

// ParseSubject accepts both the dashed and the compact (32 hex chars) uuid forms.
func ParseSubject(raw string) (Subject, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return Subject{}, fmt.Errorf("%w: %q", errors.ErrInvalidSubject, raw)
	}
	return Subject{ID: id}, nil
}

func (s Subject) String() string {
	return s.ID.String()
}

// Compact returns the identifier without dashes, as some backends store it.
func (s Subject) Compact() string {
	b := s.ID
	return fmt.Sprintf("%x", b[:])
}
