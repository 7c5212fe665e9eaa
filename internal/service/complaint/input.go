package complaint

import (
	"strings"
	"unicode/utf8"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

// PreviewRunes is the length of a response preview in the list view.
const PreviewRunes = 140

// ReplyInput holds a recipient's answer to a complaint.
type ReplyInput struct {
	ComplaintID int64
	Response    string
}

// Validate checks all fields and collects all errors.
func (i ReplyInput) Validate() error {
	var errs []domain.FieldError
	if i.ComplaintID <= 0 {
		errs = append(errs, domain.FieldError{Field: "complaint_id", Message: "required"})
	}
	if i.text() == "" {
		errs = append(errs, domain.FieldError{Field: "response", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i ReplyInput) text() string { return strings.TrimSpace(i.Response) }

// SubmitInput holds a new complaint. An empty RecipientType addresses hr.
type SubmitInput struct {
	Title         string
	Message       string
	RecipientType domain.RecipientType
}

// Validate checks all fields and collects all errors.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if strings.TrimSpace(i.Message) == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	if i.RecipientType != "" && !i.RecipientType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "recipient_type", Message: "must be hr or manager"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i SubmitInput) submission() domain.ComplaintSubmission {
	rt := i.RecipientType
	if rt == "" {
		rt = domain.RecipientHR
	}
	return domain.ComplaintSubmission{
		Title:         strings.TrimSpace(i.Title),
		Message:       strings.TrimSpace(i.Message),
		RecipientType: rt,
	}
}

// Preview shortens a response for the list view to PreviewRunes runes,
// appending an ellipsis when it was cut. A nil response previews empty.
func Preview(response *string) string {
	if response == nil {
		return ""
	}
	s := *response
	if utf8.RuneCountInString(s) <= PreviewRunes {
		return s
	}
	return string([]rune(s)[:PreviewRunes]) + "…"
}
