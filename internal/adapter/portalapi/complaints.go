package portalapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

var complaintListPaths = map[domain.Role]string{
	domain.RoleEmployee: "/api/complaints/my_complaints/",
	domain.RoleManager:  "/api/complaints/manager_complaints/",
	domain.RoleHR:       "/api/complaints/hr_complaints/",
}

// ComplaintListPath returns the list endpoint for role, or false when the
// role has no complaint view.
func ComplaintListPath(role domain.Role) (string, bool) {
	p, ok := complaintListPaths[role]
	return p, ok
}

// ListComplaints fetches the complaint list visible to role, in server order.
func (c *Client) ListComplaints(ctx context.Context, role domain.Role) ([]domain.Complaint, error) {
	path, ok := ComplaintListPath(role)
	if !ok {
		return nil, fmt.Errorf("portalapi.ListComplaints: role %q: %w", role, domain.ErrValidation)
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("portalapi.ListComplaints: %w", err)
	}
	items, err := decodeList[apiComplaint](raw)
	if err != nil {
		return nil, fmt.Errorf("portalapi.ListComplaints: %w", err)
	}

	out := make([]domain.Complaint, 0, len(items))
	for _, it := range items {
		out = append(out, it.toDomain())
	}
	return out, nil
}

// MarkComplaintSeen flags the complaint as seen by the caller.
func (c *Client) MarkComplaintSeen(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/complaints/%d/mark_seen/", id), nil, nil); err != nil {
		return fmt.Errorf("portalapi.MarkComplaintSeen: %w", err)
	}
	return nil
}

// ReplyComplaint posts a reply as role, which must be manager or hr.
func (c *Client) ReplyComplaint(ctx context.Context, id int64, role domain.Role, response string) error {
	if !role.IsRecipient() {
		return fmt.Errorf("portalapi.ReplyComplaint: role %q: %w", role, domain.ErrForbidden)
	}
	path := fmt.Sprintf("/api/complaints/%d/%s_reply/", id, role)
	if err := c.do(ctx, http.MethodPost, path, apiReply{Response: response}, nil); err != nil {
		return fmt.Errorf("portalapi.ReplyComplaint: %w", err)
	}
	return nil
}

// SubmitComplaint files a new complaint.
func (c *Client) SubmitComplaint(ctx context.Context, s domain.ComplaintSubmission) error {
	body := apiComplaintSubmission{
		Title:         s.Title,
		Message:       s.Message,
		RecipientType: s.RecipientType.String(),
	}
	if err := c.do(ctx, http.MethodPost, "/api/complaints/submit/", body, nil); err != nil {
		return fmt.Errorf("portalapi.SubmitComplaint: %w", err)
	}
	return nil
}
