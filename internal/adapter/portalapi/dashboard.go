package portalapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

// Sections lists the dashboard sections in server order.
func (c *Client) Sections(ctx context.Context) ([]domain.Section, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/sections/", nil, &raw); err != nil {
		return nil, fmt.Errorf("portalapi.Sections: %w", err)
	}
	items, err := decodeList[apiSection](raw)
	if err != nil {
		return nil, fmt.Errorf("portalapi.Sections: %w", err)
	}
	out := make([]domain.Section, 0, len(items))
	for _, it := range items {
		out = append(out, it.toDomain())
	}
	return out, nil
}

// Forms lists every downloadable form.
func (c *Client) Forms(ctx context.Context) ([]domain.Form, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/forms/", nil, &raw); err != nil {
		return nil, fmt.Errorf("portalapi.Forms: %w", err)
	}
	items, err := decodeList[apiForm](raw)
	if err != nil {
		return nil, fmt.Errorf("portalapi.Forms: %w", err)
	}
	out := make([]domain.Form, 0, len(items))
	for _, it := range items {
		out = append(out, it.toDomain())
	}
	return out, nil
}

// PreviewFormURL is the printable preview served by the document service.
func (c *Client) PreviewFormURL(id string) string {
	return c.baseURL + "/api/preview-form/" + url.PathEscape(id) + "/"
}
