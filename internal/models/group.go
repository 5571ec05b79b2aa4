package models

import "errors"

// ErrEmptyGroup is returned when a group is created without members.
var ErrEmptyGroup = errors.New("group must have at least one member")

// Group represents a named set of users sharing expenses.
// Membership is fixed after creation; every Expense and Settlement in the
// group references it by ID.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"group_id"`

	// Name is the display name of the group (e.g. "Weekend Trip").
	Name string `json:"name"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`

	// Active reports whether the group is still in use.
	Active bool `json:"active"`

	// Members is the ordered list of users in this group. Never empty.
	Members []User `json:"members"`
}

// Validate checks the group invariants.
func (g *Group) Validate() error {
	if len(g.Members) == 0 {
		return ErrEmptyGroup
	}
	return nil
}

// IsMember reports whether the user belongs to this group.
func (g *Group) IsMember(userID string) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// MemberIDs returns the IDs of all members, in member order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}
