package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu. Key, when set, activates the item
// directly.
type MenuItem struct {
	Label    string
	Key      string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. Navigation wraps around and skips
// disabled items. Render it with MenuButtons.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.step(-1, 1)
	return m
}

// step walks from index in direction dir to the next enabled item, wrapping
// once. It returns index when nothing else is enabled.
func (m Menu) step(index, dir int) int {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		j := ((index+dir*i)%n + n) % n
		if !m.Items[j].Disabled {
			return j
		}
	}
	return max(index, 0)
}

// Update handles navigation, Enter and item hotkeys.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.Selected = m.step(m.Selected, -1)
		return m, nil
	case "down", "j", "tab":
		m.Selected = m.step(m.Selected, 1)
		return m, nil
	case "enter":
		return m, m.activate(m.Selected)
	}

	for i, item := range m.Items {
		if item.Key != "" && strings.EqualFold(item.Key, key) {
			if item.Disabled {
				return m, nil
			}
			m.Selected = i
			return m, m.activate(i)
		}
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}
