package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the player.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
}

var (
	ThemeDeepSpace = Theme{
		Name:      "deep-space",
		Primary:   lipgloss.Color("#00ccff"),
		Secondary: lipgloss.Color("#00ff88"),
		Accent:    lipgloss.Color("#ffcc00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666688"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"), // Green phosphor
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"),
		Secondary: lipgloss.Color("#feca57"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
	}

	Themes = []Theme{
		ThemeDeepSpace,
		ThemeRetroGreen,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
