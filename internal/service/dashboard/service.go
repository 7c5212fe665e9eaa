// Package dashboard loads the dashboard content: department sections, their
// forms and the signed-in role.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
	"github.com/Eiad-Soufan/bm-requests-frontend/pkg/textdir"
)

type dashboardAPI interface {
	Sections(ctx context.Context) ([]domain.Section, error)
	Forms(ctx context.Context) ([]domain.Form, error)
	CurrentUser(ctx context.Context) (domain.CurrentUser, error)
	PreviewFormURL(id string) string
}

type sessionReader interface {
	Current() domain.Session
}

// Board is one loaded dashboard.
type Board struct {
	Sections []domain.Section
	Forms    []domain.Form
	Role     domain.Role
}

// ShowNotifyEntry reports whether the role is offered the notification
// composer entry. Access to the composer itself is decided by the token.
func (b Board) ShowNotifyEntry() bool {
	return b.Role.IsRecipient()
}

// DefaultSection is the id of the first section, or empty.
func (b Board) DefaultSection() string {
	if len(b.Sections) == 0 {
		return ""
	}
	return b.Sections[0].ID
}

// Section finds a section by id.
func (b Board) Section(id string) (domain.Section, bool) {
	for _, s := range b.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Section{}, false
}

// FormsFor returns the forms attached to a section, in server order.
// An empty id selects the default section.
func (b Board) FormsFor(sectionID string) []domain.Form {
	if sectionID == "" {
		sectionID = b.DefaultSection()
	}
	var out []domain.Form
	for _, f := range b.Forms {
		if f.SectionID != "" && f.SectionID == sectionID {
			out = append(out, f)
		}
	}
	return out
}

// Service loads boards.
type Service struct {
	api  dashboardAPI
	sess sessionReader
	log  *slog.Logger
}

// NewService creates a dashboard service.
func NewService(log *slog.Logger, api dashboardAPI, sess sessionReader) *Service {
	return &Service{
		api:  api,
		sess: sess,
		log:  log.With("service", "dashboard"),
	}
}

// Load fetches sections, forms and the current user concurrently. Any failure
// fails the whole load. The role reported by the server wins over the one in
// the session.
func (s *Service) Load(ctx context.Context) (Board, error) {
	var (
		b    Board
		user domain.CurrentUser
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		b.Sections, err = s.api.Sections(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		b.Forms, err = s.api.Forms(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		user, err = s.api.CurrentUser(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Board{}, fmt.Errorf("dashboard.Load: %w", err)
	}

	b.Role = user.Role
	if !b.Role.IsValid() {
		b.Role = s.sess.Current().Role
	}
	s.log.DebugContext(ctx, "dashboard loaded",
		slog.Int("sections", len(b.Sections)),
		slog.Int("forms", len(b.Forms)),
		slog.String("role", b.Role.String()),
	)
	return b, nil
}

// PreviewURL is the print preview address of a form.
func (s *Service) PreviewURL(formID string) string {
	return s.api.PreviewFormURL(formID)
}

// SectionLabel names a section in the interface language.
func SectionLabel(sec domain.Section, lang string) string {
	if textdir.IsArabic(lang) {
		return sec.NameAR
	}
	return sec.NameEN
}

// FormLabel names a form in the interface language.
func FormLabel(f domain.Form, lang string) string {
	if textdir.IsArabic(lang) {
		return f.NameAR
	}
	return f.NameEN
}

// SearchField is a form attribute the search box can match.
type SearchField string

const (
	FieldNameAR       SearchField = "name_ar"
	FieldNameEN       SearchField = "name_en"
	FieldSerialNumber SearchField = "serial_number"
	FieldCategory     SearchField = "category"
	FieldDescription  SearchField = "description"
)

func (f SearchField) IsValid() bool {
	switch f {
	case FieldNameAR, FieldNameEN, FieldSerialNumber, FieldCategory, FieldDescription:
		return true
	}
	return false
}

func (f SearchField) value(form domain.Form) string {
	switch f {
	case FieldNameAR:
		return form.NameAR
	case FieldNameEN:
		return form.NameEN
	case FieldSerialNumber:
		return form.SerialNumber
	case FieldCategory:
		return form.Category
	case FieldDescription:
		return form.Description
	}
	return ""
}

// SearchForms keeps the forms whose field contains term, case-insensitively.
// An empty field searches the Arabic name; an empty term keeps everything.
func SearchForms(forms []domain.Form, field SearchField, term string) ([]domain.Form, error) {
	if field == "" {
		field = FieldNameAR
	}
	if !field.IsValid() {
		return nil, domain.NewValidationError("field", fmt.Sprintf("unknown search field %q", field))
	}
	term = strings.ToLower(term)
	var out []domain.Form
	for _, f := range forms {
		if strings.Contains(strings.ToLower(field.value(f)), term) {
			out = append(out, f)
		}
	}
	return out, nil
}
