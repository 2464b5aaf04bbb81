package notify

import (
	"strconv"
	"strings"

	"github.com/kihana2077/countdown/internal/model"
)

// DefaultTemplate is the default reminder message template.
const DefaultTemplate = "Reminder: {days} day(s) until {name}"

// RenderTemplate expands the {name}, {days} and {date} placeholders of a
// reminder message template.
func RenderTemplate(template string, cd *model.Countdown, daysLeft int) string {
	r := strings.NewReplacer(
		"{name}", cd.Name,
		"{days}", strconv.Itoa(daysLeft),
		"{date}", cd.TargetDate.String(),
	)
	return r.Replace(template)
}

// BuildReminder renders a reminder notification for a countdown record.
func BuildReminder(template string, cd *model.Countdown, daysLeft int) *model.Notification {
	if template == "" {
		template = DefaultTemplate
	}

	n := model.NewNotification(cd.OwnerKey, "Countdown Reminder", RenderTemplate(template, cd, daysLeft))
	n.WithField("Name", cd.Name)
	n.WithField("Date", cd.TargetDate.String())
	n.WithField("Days Left", strconv.Itoa(daysLeft))
	if cd.Remark != "" {
		n.WithField("Remark", cd.Remark)
	}
	return n
}
