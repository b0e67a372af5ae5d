package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle     key.Binding
	Reset      key.Binding
	Plus       key.Binding
	Minus      key.Binding
	AppMode    key.Binding
	Section    key.Binding
	Focused    key.Binding
	Normal     key.Binding
	Distracted key.Binding
	TakeBreak  key.Binding
	Continue   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:     key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "start/pause")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Plus:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "+5 min")),
		Minus:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "-5 min")),
		AppMode:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "pomodoro/mock exam")),
		Section:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "next section")),
		Focused:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focused")),
		Normal:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "normal")),
		Distracted: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "distracted")),
		TakeBreak:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "take a break")),
		Continue:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "keep going")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Section, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Plus, k.Minus},
		{k.AppMode, k.Section, k.TakeBreak, k.Continue},
		{k.Focused, k.Normal, k.Distracted},
		{k.Help, k.Quit},
	}
}
