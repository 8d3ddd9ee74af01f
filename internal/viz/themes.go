package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the terminal viewer.
type Theme struct {
	Name   string
	Wire   lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Good   lipgloss.Color
	Warn   lipgloss.Color
	Border lipgloss.Color
}

var (
	ThemeLinen = Theme{
		Name:   "linen",
		Wire:   lipgloss.Color("#f2e8cf"),
		Accent: lipgloss.Color("#e07a5f"),
		Text:   lipgloss.Color("#fdfcf7"),
		Muted:  lipgloss.Color("#8d8578"),
		Good:   lipgloss.Color("#81b29a"),
		Warn:   lipgloss.Color("#f2cc8f"),
		Border: lipgloss.Color("#5a5248"),
	}

	ThemeDenim = Theme{
		Name:   "denim",
		Wire:   lipgloss.Color("#8ecae6"),
		Accent: lipgloss.Color("#ffb703"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4d7ea8"),
		Good:   lipgloss.Color("#00ff88"),
		Warn:   lipgloss.Color("#fb8500"),
		Border: lipgloss.Color("#23395b"),
	}

	ThemePhosphor = Theme{
		Name:   "phosphor",
		Wire:   lipgloss.Color("#00ff00"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Good:   lipgloss.Color("#88ff88"),
		Warn:   lipgloss.Color("#ffff00"),
		Border: lipgloss.Color("#003300"),
	}

	ThemeSlate = Theme{
		Name:   "slate",
		Wire:   lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#dddddd"),
		Muted:  lipgloss.Color("#777777"),
		Good:   lipgloss.Color("#44dd66"),
		Warn:   lipgloss.Color("#ffaa00"),
		Border: lipgloss.Color("#444444"),
	}

	Themes = []Theme{ThemeLinen, ThemeDenim, ThemePhosphor, ThemeSlate}
)

// GetTheme returns the named theme, or the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme cycles through Themes.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
