package domain

import "strings"

// Role is the portal role of the signed-in user.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR:
		return true
	}
	return false
}

// IsRecipient reports whether the role receives complaints (and may reply).
func (r Role) IsRecipient() bool {
	return r == RoleManager || r == RoleHR
}

// ParseRole normalizes a role string as returned by the backend.
// Unknown values are returned as-is and fail IsValid.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Importance is the server-side urgency tag of a notification.
type Importance string

const (
	ImportanceNormal    Importance = "normal"
	ImportanceImportant Importance = "important"
)

func (i Importance) String() string { return string(i) }

func (i Importance) IsValid() bool {
	switch i {
	case ImportanceNormal, ImportanceImportant:
		return true
	}
	return false
}

// Priority is the choice presented in the composer. It is never sent as is;
// see Priority.Importance.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) String() string { return string(p) }

// Importance maps the presented priority onto the API importance.
func (p Priority) Importance() Importance {
	if p == PriorityUrgent {
		return ImportanceImportant
	}
	return ImportanceNormal
}

// RecipientType addresses a new complaint.
type RecipientType string

const (
	RecipientHR      RecipientType = "hr"
	RecipientManager RecipientType = "manager"
)

func (r RecipientType) String() string { return string(r) }

func (r RecipientType) IsValid() bool {
	switch r {
	case RecipientHR, RecipientManager:
		return true
	}
	return false
}
