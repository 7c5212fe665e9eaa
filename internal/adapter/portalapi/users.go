package portalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

// ErrUnusablePage is returned when a user listing is neither a bare array nor
// a known envelope.
var ErrUnusablePage = errors.New("unusable user page shape")

var envelopeKeys = []string{"results", "users", "employees"}

// FetchUserPage fetches one page of a user listing. ref is a path with query
// or an absolute pagination cursor.
func (c *Client) FetchUserPage(ctx context.Context, ref string) (domain.UserPage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, ref, nil, &raw); err != nil {
		return domain.UserPage{}, fmt.Errorf("portalapi.FetchUserPage: %w", err)
	}
	page, err := DecodeUserPage(raw)
	if err != nil {
		return domain.UserPage{}, fmt.Errorf("portalapi.FetchUserPage %s: %w", ref, err)
	}
	return page, nil
}

// DecodeUserPage normalizes a user listing into records plus an optional next
// cursor. Accepted shapes: a bare array, or an object holding an array under
// "results", "users" or "employees" (first match wins) with an optional
// string "next". Non-object array elements are dropped. Numbers decode as
// json.Number so large ids keep their exact text.
func DecodeUserPage(raw []byte) (domain.UserPage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return domain.UserPage{}, fmt.Errorf("decode json: %w", err)
	}

	switch doc := v.(type) {
	case []any:
		return domain.UserPage{Records: objects(doc)}, nil
	case map[string]any:
		for _, k := range envelopeKeys {
			arr, ok := doc[k].([]any)
			if !ok {
				continue
			}
			next, _ := doc["next"].(string)
			return domain.UserPage{Records: objects(arr), Next: next}, nil
		}
	}
	return domain.UserPage{}, ErrUnusablePage
}

func objects(arr []any) []map[string]any {
	out := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
