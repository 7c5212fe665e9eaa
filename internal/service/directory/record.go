package directory

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

var idFields = []string{"id", "user_id", "pk"}

// FromRecord normalizes a raw listing record into a directory user.
func FromRecord(rec map[string]any) domain.DirectoryUser {
	u := domain.DirectoryUser{
		Username: usernameOf(rec),
		Raw:      rec,
	}
	u.Key = KeyOf(rec)
	u.DisplayName = displayName(rec, u)
	return u
}

// KeyOf derives the deduplication key: username, then the local part of the
// email, then the first numeric id field. Records with none are unkeyed.
func KeyOf(rec map[string]any) domain.DirectoryKey {
	if name := usernameOf(rec); name != "" {
		return domain.DirectoryKey{Kind: domain.KeyUsername, Value: name}
	}
	if local := emailLocal(rec); local != "" {
		return domain.DirectoryKey{Kind: domain.KeyEmailLocalPart, Value: local}
	}
	for _, f := range idFields {
		if id := scalar(rec[f]); id != "" {
			return domain.DirectoryKey{Kind: domain.KeyNumericID, Value: id}
		}
	}
	return domain.DirectoryKey{}
}

func usernameOf(rec map[string]any) string {
	if name := text(rec["username"]); name != "" {
		return name
	}
	if nested, ok := rec["user"].(map[string]any); ok {
		return text(nested["username"])
	}
	return ""
}

func emailLocal(rec map[string]any) string {
	email := text(rec["email"])
	local, _, _ := strings.Cut(email, "@")
	return strings.TrimSpace(local)
}

func displayName(rec map[string]any, u domain.DirectoryUser) string {
	if v := text(rec["full_name"]); v != "" {
		return v
	}
	if v := text(rec["name_ar"]); v != "" {
		return v
	}
	if v := strings.TrimSpace(text(rec["first_name"]) + " " + text(rec["last_name"])); v != "" {
		return v
	}
	if u.Username != "" {
		return u.Username
	}
	if v := emailLocal(rec); v != "" {
		return v
	}
	return u.Key.String()
}

func text(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// scalar renders a string or number field; anything else is empty.
func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return ""
	}
}

// canonical is the identity of an unkeyed record. encoding/json sorts map
// keys, so equal records encode to equal text.
func canonical(rec map[string]any) string {
	b, err := json.Marshal(rec)
	if err != nil {
		return ""
	}
	return string(b)
}
