package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Pause     key.Binding
	Algorithm key.Binding
	Hotter    key.Binding
	Colder    key.Binding
	Critical  key.Binding
	Reset     key.Binding
	Help      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
		Algorithm: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle algorithm"),
		),
		Hotter: key.NewBinding(
			key.WithKeys("up", "k", "+"),
			key.WithHelp("↑/k", "raise T"),
		),
		Colder: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("↓/j", "lower T"),
		),
		Critical: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "T = Tc"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Pause, k.Algorithm, k.Hotter, k.Colder, k.Critical, k.Reset, k.Quit}
}
