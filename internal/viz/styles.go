package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the lipgloss styles derived from a Theme.
type palette struct {
	canvas, stats, header, label, value, active, warn, muted, key lipgloss.Style
}

func newPalette(t Theme) palette {
	return palette{
		canvas: lipgloss.NewStyle().Padding(1, 2).Foreground(t.Wire),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(statsWidth),
		header: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		active: lipgloss.NewStyle().Foreground(t.Good).Bold(true),
		warn:   lipgloss.NewStyle().Foreground(t.Warn).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(t.Muted),
		key:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
	}
}

// ProgressBar renders a filled bar for fraction in [0, 1].
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Sparkline renders the last width values as block characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	chars := []rune("▁▂▃▄▅▆▇█")
	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(chars)-1))
		b.WriteRune(chars[max(0, min(len(chars)-1, idx))])
	}
	return b.String()
}

// keyHints renders "key action" pairs on one line.
func keyHints(p palette, pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, p.key.Render(pairs[i])+" "+p.muted.Render(pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}
