package app

import (
	"github.com/charmbracelet/bubbles/v2/key"
)

type keyMap struct {
	Next     key.Binding
	Previous key.Binding
	First    key.Binding
	Last     key.Binding
	Today    key.Binding
	WeekDown key.Binding
	WeekUp   key.Binding
	DayNext  key.Binding
	DayPrev  key.Binding
	Clear    key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("l", "n", "right", "pgdown"), key.WithHelp("l", "next month")),
		Previous: key.NewBinding(key.WithKeys("h", "p", "left", "pgup"), key.WithHelp("h", "prev month")),
		First:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Last:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		WeekDown: key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "week")),
		WeekUp:   key.NewBinding(key.WithKeys("k", "up")),
		DayNext:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "day")),
		DayPrev:  key.NewBinding(key.WithKeys("-")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.WeekDown, k.DayNext, k.Today, k.Clear, k.Quit}
}
