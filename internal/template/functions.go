package template

import (
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	"gitlab.com/tozd/go/errors"
)

// DateValue passes a date through a pipe chain
type DateValue struct {
	t time.Time
}

// FormatDateValue formats dv with a strftime layout, %Y-%m-%d when empty
func FormatDateValue(dv *DateValue, format string) string {
	if format == "" {
		format = "%Y-%m-%d"
	}
	return strftime.Format(format, dv.t)
}

// WeekdayWithStart returns the date of dayNum (0 = Sunday) in the week
// containing now, for weeks starting on weekStart
func WeekdayWithStart(now time.Time, dayNum, weekStart int) *DateValue {
	weekStart = ((weekStart % 7) + 7) % 7
	daysToWeekStart := (int(now.Weekday()) - weekStart + 7) % 7
	weekStartDate := now.AddDate(0, 0, -daysToWeekStart)
	daysToTarget := (((dayNum%7)+7)%7 - weekStart + 7) % 7
	return &DateValue{t: weekStartDate.AddDate(0, 0, daysToTarget)}
}

// Clipboard runs command and returns its trimmed output. The default is
// wl-paste.
func Clipboard(command string) (string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{"wl-paste"}
	}
	output, err := exec.Command(fields[0], fields[1:]...).Output()
	if err != nil {
		return "", errors.Errorf("clipboard read error: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Env returns an environment variable, empty when unset
func Env(name string) string {
	return os.Getenv(name)
}

// Home returns the user's home directory, empty when unknown
func Home() string {
	home, _ := os.UserHomeDir()
	return home
}

// ShellQuote wraps s in single quotes for /bin/sh
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
