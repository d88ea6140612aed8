package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	DashboardID ID
	UploadID    ID
	UserID      ID
)

// DefaultUserID is the single-tenant demo user seeded at migration time.
const DefaultUserID UserID = "00000000-0000-0000-0000-000000000001"

// String conversions for domain IDs
func (id DashboardID) String() string { return ID(id).String() }
func (id UploadID) String() string    { return ID(id).String() }
func (id UserID) String() string      { return ID(id).String() }

// ParseDashboardID parses a string into DashboardID
func ParseDashboardID(s string) (DashboardID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("dashboard ID cannot be empty")
	}
	return DashboardID(s), nil
}

// ParseUserID parses a string into UserID
func ParseUserID(s string) (UserID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("user ID cannot be empty")
	}
	return UserID(s), nil
}
