package notification

import (
	"strings"
	"time"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
	"github.com/Eiad-Soufan/bm-requests-frontend/pkg/textdir"
)

// DefaultTitle replaces an empty notification title.
const DefaultTitle = "Notification"

// View is a notification prepared for display in one interface language.
type View struct {
	ID      int64
	Title   string
	Badge   string
	Urgent  bool
	Date    string
	Message string
	Dir     textdir.Direction
	Unread  bool
}

// Render prepares n for display. The message keeps its line breaks; Dir is
// the reading direction of lang.
func Render(n domain.UserNotification, lang string) View {
	title := strings.TrimSpace(n.Notification.Title)
	if title == "" {
		title = DefaultTitle
	}
	date := ""
	if !n.Notification.CreatedAt.IsZero() {
		date = FormatDate(n.Notification.CreatedAt.Local(), lang)
	}
	return View{
		ID:      n.ID,
		Title:   title,
		Badge:   BadgeLabel(n.Notification.Importance),
		Urgent:  n.Notification.Importance == domain.ImportanceImportant,
		Date:    date,
		Message: n.Notification.Message,
		Dir:     textdir.ForLanguage(lang),
		Unread:  !n.IsRead,
	}
}

// BadgeLabel is "Urgent" for important notifications and "Normal" otherwise.
func BadgeLabel(imp domain.Importance) string {
	if imp == domain.ImportanceImportant {
		return "Urgent"
	}
	return "Normal"
}

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

var arabicDigits = strings.NewReplacer(
	"0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤",
	"5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩",
)

// FormatDate renders t for lang. Arabic reads "23 أغسطس 2025، 11:32 ص" in
// Arabic-Indic digits; every other language reads "Aug 23, 2025, 11:32 AM".
// The zero time renders empty.
func FormatDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	if !textdir.IsArabic(lang) {
		return t.Format("Jan 02, 2006, 03:04 PM")
	}

	period := "ص"
	if t.Hour() >= 12 {
		period = "م"
	}
	s := t.Format("02") + " " + arabicMonths[t.Month()-1] + " " + t.Format("2006") +
		"، " + t.Format("03:04") + " " + period
	return arabicDigits.Replace(s)
}
