package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/kihana2077/countdown/internal/model"
)

var (
	nameStyle    = lipgloss.NewStyle().Bold(true)
	dateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	remainStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	expiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	remarkStyle  = lipgloss.NewStyle().Faint(true)
)

// PrintCountdowns renders an owner's records in the configured format.
func (f *Formatter) PrintCountdowns(records []*model.Countdown, today model.Date) error {
	if f.Format == FormatJSON {
		return f.JSON(records)
	}

	if len(records) == 0 {
		f.Println("No countdowns yet. Add one with: countdown add NAME DATE")
		return nil
	}

	color := f.Format == FormatCLI && f.IsColorEnabled()
	for _, rec := range records {
		daysLeft := rec.DaysLeft(today)
		status := model.Status(daysLeft)

		if color {
			styled := remainStyle
			if daysLeft < 0 {
				styled = expiredStyle
			}
			f.Printf("%2d. %s\n    %s  %s\n",
				rec.ID,
				nameStyle.Render(rec.Name),
				dateStyle.Render(rec.TargetDate.String()),
				styled.Render(status),
			)
			if rec.Remark != "" {
				f.Printf("    %s\n", remarkStyle.Render(rec.Remark))
			}
			continue
		}

		f.Printf("%2d. %s\n    %s  %s\n", rec.ID, rec.Name, rec.TargetDate, status)
		if rec.Remark != "" {
			f.Printf("    %s\n", rec.Remark)
		}
	}
	return nil
}

// PrintMessage prints a user message, as JSON when that format is set.
func (f *Formatter) PrintMessage(msg string) error {
	if f.Format == FormatJSON {
		return f.JSON(map[string]string{"message": msg})
	}
	fmt.Fprintln(f.Writer, msg)
	return nil
}
