package portalapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

// flexID accepts an id sent as a JSON number or string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) int64() int64 {
	n, _ := strconv.ParseInt(string(f), 10, 64)
	return n
}

// apiTime parses backend timestamps leniently; unparseable values become the
// zero time.
type apiTime time.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *apiTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = apiTime{}
		return nil
	}
	*t = apiTime(parseTime(s))
	return nil
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// ---------------------------------------------------------------------------
// auth
// ---------------------------------------------------------------------------

type apiTokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type apiCurrentUser struct {
	ID       flexID `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	UserRole string `json:"userRole"`
}

func (u apiCurrentUser) toDomain() domain.CurrentUser {
	role := u.Role
	if role == "" {
		role = u.UserRole
	}
	r := domain.ParseRole(role)
	if r == "" {
		r = domain.RoleEmployee
	}
	return domain.CurrentUser{ID: string(u.ID), Username: u.Username, Role: r}
}

// ---------------------------------------------------------------------------
// complaints
// ---------------------------------------------------------------------------

type apiComplaint struct {
	ID                flexID  `json:"id"`
	Title             string  `json:"title"`
	Message           string  `json:"message"`
	SenderUsername    string  `json:"sender_username"`
	RecipientDisplay  string  `json:"recipient_display"`
	CreatedAt         apiTime `json:"created_at"`
	IsResponded       bool    `json:"is_responded"`
	Response          *string `json:"response"`
	IsSeenByEmployee  bool    `json:"is_seen_by_employee"`
	IsSeenByRecipient bool    `json:"is_seen_by_recipient"`
}

func (c apiComplaint) toDomain() domain.Complaint {
	return domain.Complaint{
		ID:                c.ID.int64(),
		Title:             c.Title,
		Message:           c.Message,
		SenderUsername:    c.SenderUsername,
		RecipientDisplay:  c.RecipientDisplay,
		CreatedAt:         time.Time(c.CreatedAt),
		IsResponded:       c.IsResponded,
		Response:          c.Response,
		IsSeenByEmployee:  c.IsSeenByEmployee,
		IsSeenByRecipient: c.IsSeenByRecipient,
	}
}

type apiComplaintSubmission struct {
	Title         string `json:"title"`
	Message       string `json:"message"`
	RecipientType string `json:"recipient_type"`
}

type apiReply struct {
	Response string `json:"response"`
}

// ---------------------------------------------------------------------------
// notifications
// ---------------------------------------------------------------------------

type apiNotification struct {
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	Importance string  `json:"importance"`
	CreatedAt  apiTime `json:"created_at"`
}

type apiUserNotification struct {
	ID           flexID           `json:"id"`
	Notification *apiNotification `json:"notification"`
	IsRead       bool             `json:"is_read"`
}

func (n apiUserNotification) toDomain() domain.UserNotification {
	out := domain.UserNotification{ID: n.ID.int64(), IsRead: n.IsRead}
	if n.Notification != nil {
		imp := domain.Importance(strings.ToLower(n.Notification.Importance))
		if !imp.IsValid() {
			imp = domain.ImportanceNormal
		}
		out.Notification = domain.Notification{
			Title:      n.Notification.Title,
			Message:    n.Notification.Message,
			Importance: imp,
			CreatedAt:  time.Time(n.Notification.CreatedAt),
		}
	}
	return out
}

// apiBroadcast omits usernames entirely when Usernames is nil.
type apiBroadcast struct {
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Importance string    `json:"importance"`
	Usernames  *[]string `json:"usernames,omitempty"`
}

func broadcastFromDomain(p domain.BroadcastPayload) apiBroadcast {
	b := apiBroadcast{Title: p.Title, Message: p.Message, Importance: p.Importance.String()}
	if !p.ToAll {
		names := append([]string{}, p.Usernames...)
		b.Usernames = &names
	}
	return b
}

// ---------------------------------------------------------------------------
// dashboard
// ---------------------------------------------------------------------------

type apiSection struct {
	ID     flexID `json:"id"`
	NameAR string `json:"name_ar"`
	NameEN string `json:"name_en"`
}

func (s apiSection) toDomain() domain.Section {
	return domain.Section{ID: string(s.ID), NameAR: s.NameAR, NameEN: s.NameEN}
}

// apiSectionRef is a form's section, sent either nested ({"id": 3}) or as a
// bare id.
type apiSectionRef struct {
	ID flexID
}

func (r *apiSectionRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var nested struct {
			ID flexID `json:"id"`
		}
		if err := json.Unmarshal(b, &nested); err != nil {
			return err
		}
		r.ID = nested.ID
		return nil
	}
	return r.ID.UnmarshalJSON(b)
}

type apiForm struct {
	ID           flexID         `json:"id"`
	SerialNumber flexID         `json:"serial_number"`
	NameAR       string         `json:"name_ar"`
	NameEN       string         `json:"name_en"`
	Category     string         `json:"category"`
	Description  string         `json:"description"`
	File         *string        `json:"file"`
	Section      *apiSectionRef `json:"section"`
}

func (f apiForm) toDomain() domain.Form {
	out := domain.Form{
		ID:           string(f.ID),
		SerialNumber: string(f.SerialNumber),
		NameAR:       f.NameAR,
		NameEN:       f.NameEN,
		Category:     f.Category,
		Description:  f.Description,
	}
	if f.File != nil {
		out.File = *f.File
	}
	if f.Section != nil {
		out.SectionID = string(f.Section.ID)
	}
	return out
}
