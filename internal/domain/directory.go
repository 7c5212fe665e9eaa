package domain

// KeyKind tells which field a directory key was derived from.
type KeyKind int

const (
	KeyNone KeyKind = iota
	KeyUsername
	KeyEmailLocalPart
	KeyNumericID
)

func (k KeyKind) String() string {
	switch k {
	case KeyUsername:
		return "username"
	case KeyEmailLocalPart:
		return "email"
	case KeyNumericID:
		return "id"
	default:
		return "none"
	}
}

// DirectoryKey is the deduplication key of a directory record.
// Only keyed values take part in set membership.
type DirectoryKey struct {
	Kind  KeyKind
	Value string
}

// IsKeyed reports whether the key identifies the record.
func (k DirectoryKey) IsKeyed() bool {
	return k.Kind != KeyNone && k.Value != ""
}

func (k DirectoryKey) String() string {
	if !k.IsKeyed() {
		return ""
	}
	return k.Value
}

// DirectoryUser is a record of the composer's page-accumulated directory.
// Username is empty when the record cannot be addressed by the send API.
type DirectoryUser struct {
	Key         DirectoryKey
	Username    string
	DisplayName string
	Raw         map[string]any
}

// Selectable reports whether the user can be added to an explicit audience.
func (u DirectoryUser) Selectable() bool {
	return u.Username != ""
}

// UserPage is one normalized page of a user listing.
// Next is the pagination cursor (a URL) or empty on the last page.
type UserPage struct {
	Records []map[string]any
	Next    string
}
