package core

import (
	"strings"

	"github.com/google/uuid"
)

// ID is a generic domain identifier.
type ID string

// NewID creates a new time-ordered identifier using UUID v7, falling back to
// v4 if the platform clock source for v7 is unavailable.
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

func (id ID) String() string {
	return string(id)
}

func (id ID) IsEmpty() bool {
	return id == ""
}

// RunID identifies a single orchestrator invocation over a baseline/target pair.
type RunID ID

func (id RunID) String() string { return ID(id).String() }

func NewRunID() RunID { return RunID(NewID()) }

// ParseRunID validates a string as a RunID.
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", NewValidationError("run_id", "must not be empty")
	}
	return RunID(s), nil
}
