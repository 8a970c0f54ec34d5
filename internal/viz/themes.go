package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the spin and accent colours of the TUI.
type Theme struct {
	Name   string
	Up     lipgloss.Color
	Down   lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Up:     lipgloss.Color("#00ccff"),
		Down:   lipgloss.Color("#ff4488"),
		Accent: lipgloss.Color("#00ffff"),
		Muted:  lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Up:     lipgloss.Color("#00ff00"), // Green phosphor
		Down:   lipgloss.Color("#005500"),
		Accent: lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Up:     lipgloss.Color("#ffffff"),
		Down:   lipgloss.Color("#444444"),
		Accent: lipgloss.Color("#0088ff"),
		Muted:  lipgloss.Color("#888888"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Up:     lipgloss.Color("#feca57"),
		Down:   lipgloss.Color("#ff6b6b"), // Coral
		Accent: lipgloss.Color("#ff9ff3"),
		Muted:  lipgloss.Color("#8b6b8c"),
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// SetTheme switches the current theme and restyles spin cells.
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
	SpinUp = lipgloss.NewStyle().Foreground(CurrentTheme.Up)
	SpinDown = lipgloss.NewStyle().Foreground(CurrentTheme.Down)
	TitleStyle = TitleStyle.Foreground(CurrentTheme.Accent)
}

// NextTheme cycles to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	SetTheme(names[0])
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
