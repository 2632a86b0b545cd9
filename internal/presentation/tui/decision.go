package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/muesli/termenv"
)

// FormatDecision renders a decision as a colored, human-readable block:
// status line, hop trace and (for halts) the responsible guard.
func FormatDecision(d *domain.Decision) string {
	p := termenv.ColorProfile()
	var sb strings.Builder

	sb.WriteString(statusLine(p, d))
	sb.WriteString("\n")

	for i, hop := range d.Hops {
		prefix := "  "
		if i > 0 {
			prefix = "  ↳ "
		}
		line := fmt.Sprintf("%s%s (%d guards)", prefix, hop.Target, hop.GuardsRun)
		if hop.HaltedBy != "" {
			line += fmt.Sprintf(" halted by %s", hop.HaltedBy)
		}
		sb.WriteString(termenv.String(line).Faint().String())
		sb.WriteString("\n")
	}

	return sb.String()
}

func statusLine(p termenv.Profile, d *domain.Decision) string {
	switch d.Status {
	case domain.StatusSucceeded:
		return termenv.String("✔ allowed → " + d.FinalTarget()).Foreground(p.Color("#22c55e")).String()
	case domain.StatusRedirected:
		return termenv.String("➜ redirected → " + d.FinalTarget()).Foreground(p.Color("#eab308")).String()
	case domain.StatusAborted:
		msg := fmt.Sprintf("✘ aborted (%d)", d.Outcome.StatusCode)
		if d.Outcome.Message != "" {
			msg += ": " + d.Outcome.Message
		}
		return termenv.String(msg).Foreground(p.Color("#ef4444")).String()
	default:
		return termenv.String(string(d.Status)).Foreground(p.Color("#94a3b8")).String()
	}
}
