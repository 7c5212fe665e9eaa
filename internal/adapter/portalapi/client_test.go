package portalapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c, srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// ---------------------------------------------------------------------------
// construction / transport errors
// ---------------------------------------------------------------------------

func TestNew_RejectsRelativeURL(t *testing.T) {
	t.Parallel()
	_, err := New("/api", nil, slog.Default())
	assert.Error(t, err)
}

func TestClient_APIErrorMapping(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"detail":"Given token not valid"}`)
	})

	_, err := c.ListNotifications(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionInvalidated)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "/api/user-notifications/", apiErr.Path)
	assert.Contains(t, apiErr.Body, "Given token not valid")
}

func TestClient_APIErrorBodyKeepsRunes(t *testing.T) {
	t.Parallel()
	// 'خ' is two bytes; an odd prefix pushes one across the cut.
	detail := "x" + strings.Repeat("خ", maxErrorBody)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, detail)
	})

	_, err := c.ListNotifications(context.Background())
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, utf8.ValidString(apiErr.Body))
	assert.LessOrEqual(t, len(apiErr.Body), maxErrorBody)
	assert.Equal(t, maxErrorBody-1, len(apiErr.Body))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "مر", truncate("مرحبا", 5))
	assert.Equal(t, "", truncate("مرحبا", 1))
}

// ---------------------------------------------------------------------------
// auth
// ---------------------------------------------------------------------------

func TestClient_ObtainToken(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/token/", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"username": "sara", "password": "pw"}, body)
		writeJSON(w, http.StatusOK, `{"access":"A","refresh":"R"}`)
	})

	pair, err := c.ObtainToken(context.Background(), "sara", "pw")
	require.NoError(t, err)
	assert.Equal(t, domain.TokenPair{Access: "A", Refresh: "R"}, pair)
}

func TestClient_ObtainToken_MissingAccess(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"refresh":"R"}`)
	})

	_, err := c.ObtainToken(context.Background(), "sara", "pw")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestClient_CurrentUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want domain.CurrentUser
	}{
		{"numeric id and role", `{"id":7,"username":"sara","role":"HR"}`, domain.CurrentUser{ID: "7", Username: "sara", Role: domain.RoleHR}},
		{"userRole fallback", `{"id":"x1","username":"omar","userRole":"Manager"}`, domain.CurrentUser{ID: "x1", Username: "omar", Role: domain.RoleManager}},
		{"no role defaults to employee", `{"username":"lina"}`, domain.CurrentUser{Username: "lina", Role: domain.RoleEmployee}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, tt.body)
			})
			got, err := c.CurrentUser(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ---------------------------------------------------------------------------
// complaints
// ---------------------------------------------------------------------------

func TestClient_ListComplaints_PathByRole(t *testing.T) {
	t.Parallel()

	for role, path := range complaintListPaths {
		t.Run(role.String(), func(t *testing.T) {
			t.Parallel()
			var got string
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.Path
				writeJSON(w, http.StatusOK, `[]`)
			})
			_, err := c.ListComplaints(context.Background(), role)
			require.NoError(t, err)
			assert.Equal(t, path, got)
		})
	}
}

func TestClient_ListComplaints_Decode(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[
			{"id":1,"title":"AC","message":"broken","sender_username":"sara","recipient_display":"HR",
			 "created_at":"2025-08-23T11:32:00Z","is_responded":true,"response":"fixed",
			 "is_seen_by_employee":false,"is_seen_by_recipient":true},
			{"id":2,"title":"Parking","created_at":"not a date","response":null}
		]`)
	})

	got, err := c.ListComplaints(context.Background(), domain.RoleEmployee)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0].ID)
	assert.True(t, got[0].IsResponded)
	require.NotNil(t, got[0].Response)
	assert.Equal(t, "fixed", *got[0].Response)
	assert.Equal(t, time.Date(2025, 8, 23, 11, 32, 0, 0, time.UTC), got[0].CreatedAt)

	assert.Equal(t, int64(2), got[1].ID)
	assert.Nil(t, got[1].Response)
	assert.True(t, got[1].CreatedAt.IsZero())
}

func TestClient_ListComplaints_NonArrayIsEmpty(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"detail":"nothing"}`)
	})

	got, err := c.ListComplaints(context.Background(), domain.RoleHR)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_ListComplaints_UnknownRole(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.ListComplaints(context.Background(), domain.Role("guest"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestClient_ReplyComplaint(t *testing.T) {
	t.Parallel()
	var path string
	var body map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, `{}`)
	})

	require.NoError(t, c.ReplyComplaint(context.Background(), 9, domain.RoleManager, "on it"))
	assert.Equal(t, "/api/complaints/9/manager_reply/", path)
	assert.Equal(t, map[string]string{"response": "on it"}, body)

	err := c.ReplyComplaint(context.Background(), 9, domain.RoleEmployee, "x")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestClient_MarkSeenAndSubmit(t *testing.T) {
	t.Parallel()
	var paths []string
	var submit map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/api/complaints/submit/" {
			_ = json.NewDecoder(r.Body).Decode(&submit)
			writeJSON(w, http.StatusCreated, `{"id":5}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.MarkComplaintSeen(context.Background(), 4))
	require.NoError(t, c.SubmitComplaint(context.Background(), domain.ComplaintSubmission{
		Title: "t", Message: "m", RecipientType: domain.RecipientManager,
	}))

	assert.Equal(t, []string{"/api/complaints/4/mark_seen/", "/api/complaints/submit/"}, paths)
	assert.Equal(t, map[string]string{"title": "t", "message": "m", "recipient_type": "manager"}, submit)
}

// ---------------------------------------------------------------------------
// notifications
// ---------------------------------------------------------------------------

func TestClient_ListNotifications(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[
			{"id":11,"is_read":false,"notification":{"title":"Hi","message":"a\nb","importance":"important","created_at":"2025-08-23T11:32:00+03:00"}},
			{"id":12,"is_read":true,"notification":{"title":"","importance":"weird"}},
			{"id":13,"is_read":false}
		]`)
	})

	got, err := c.ListNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(11), got[0].ID)
	assert.Equal(t, domain.ImportanceImportant, got[0].Notification.Importance)
	assert.Equal(t, "a\nb", got[0].Notification.Message)
	assert.False(t, got[0].Notification.CreatedAt.IsZero())
	assert.Equal(t, domain.ImportanceNormal, got[1].Notification.Importance)
	assert.Equal(t, domain.Notification{}, got[2].Notification)
}

func TestClient_MarkNotificationRead(t *testing.T) {
	t.Parallel()
	var path string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		writeJSON(w, http.StatusOK, `{"status":"ok"}`)
	})

	require.NoError(t, c.MarkNotificationRead(context.Background(), 11))
	assert.Equal(t, "/api/user-notifications/11/mark_as_read/", path)
}

func TestClient_SendNotification_AllOmitsUsernames(t *testing.T) {
	t.Parallel()
	var body map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusCreated, `{}`)
	})

	err := c.SendNotification(context.Background(), domain.BroadcastPayload{
		Title: "t", Message: "m", Importance: domain.ImportanceNormal, ToAll: true,
		Usernames: []string{"ignored"},
	})
	require.NoError(t, err)
	_, has := body["usernames"]
	assert.False(t, has, "usernames key must be absent for audience all")
	assert.Equal(t, "normal", body["importance"])
}

func TestClient_SendNotification_Explicit(t *testing.T) {
	t.Parallel()
	var body map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusCreated, `{}`)
	})

	err := c.SendNotification(context.Background(), domain.BroadcastPayload{
		Title: "t", Message: "m", Importance: domain.ImportanceImportant, Usernames: []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, body["usernames"])
	assert.Equal(t, "important", body["importance"])
}

func TestClient_SendNotification_Requires201(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"queued":true}`)
	})

	err := c.SendNotification(context.Background(), domain.BroadcastPayload{Title: "t", Message: "m", ToAll: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnexpectedStatus)
}

// ---------------------------------------------------------------------------
// dashboard
// ---------------------------------------------------------------------------

func TestClient_SectionsAndForms(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/sections/":
			writeJSON(w, http.StatusOK, `[{"id":1,"name_ar":"الموارد","name_en":"HR"}]`)
		case "/api/forms/":
			writeJSON(w, http.StatusOK, `[
				{"id":3,"serial_number":"F-01","name_en":"Leave","section":{"id":1},"file":"/media/a.pdf"},
				{"id":4,"serial_number":17,"name_en":"Loan","section":2,"file":null},
				{"id":5,"name_en":"Orphan","section":null}
			]`)
		default:
			http.NotFound(w, r)
		}
	})

	sections, err := c.Sections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Section{{ID: "1", NameAR: "الموارد", NameEN: "HR"}}, sections)

	forms, err := c.Forms(context.Background())
	require.NoError(t, err)
	require.Len(t, forms, 3)
	assert.Equal(t, "1", forms[0].SectionID)
	assert.Equal(t, "/media/a.pdf", forms[0].File)
	assert.Equal(t, "2", forms[1].SectionID)
	assert.Equal(t, "17", forms[1].SerialNumber)
	assert.Empty(t, forms[1].File)
	assert.Empty(t, forms[2].SectionID)
}

func TestClient_PreviewFormURL(t *testing.T) {
	t.Parallel()
	c, err := New("https://portal.example.com/", nil, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, "https://portal.example.com/api/preview-form/42/", c.PreviewFormURL("42"))
}
