package tui

import (
	"strings"
	"time"

	"github.com/xlevchenko/TwinTalk/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		b.WriteString(data)
		b.WriteString("\n")
	} else {
		b.WriteString("-\n")
	}

	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("ctrl+c: quit"))

	return b.String()
}

// fitText cuts v to max runes, ending with "..." when shortened.
func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// shortTime renders an ISO timestamp in local time. Values that do not parse
// are shown as received.
func shortTime(raw string, now time.Time) string {
	t, err := models.ParseTimestamp(raw)
	if err != nil {
		return raw
	}
	t = t.Local()

	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Local().Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return t.Format("15:04")
	}
	return t.Format("02 Jan 2006 15:04")
}

func statusMark(m models.Message) string {
	switch m.Status {
	case models.StatusPending:
		return faintStyle.Render(" (sending...)")
	case models.StatusFailed:
		return errorStyle.Render(" (not delivered)")
	default:
		return ""
	}
}
