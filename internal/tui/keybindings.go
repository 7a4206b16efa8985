package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/toasty/internal/core/toast"
)

type keyMap struct {
	Success  key.Binding
	Error    key.Binding
	Warning  key.Binding
	Info     key.Binding
	Default  key.Binding
	Promise  key.Binding
	Fail     key.Binding
	Dismiss  key.Binding
	ClearAll key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Success:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "success")),
		Error:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error")),
		Warning:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warning")),
		Info:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		Default:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "default")),
		Promise:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "promise")),
		Fail:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "failing promise")),
		Dismiss:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "dismiss newest")),
		ClearAll: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear all")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Success, k.Error, k.Promise, k.Dismiss, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Success, k.Error, k.Warning, k.Info, k.Default},
		{k.Promise, k.Fail},
		{k.Dismiss, k.ClearAll},
		{k.Help, k.Quit},
	}
}

// variantFor maps the toast keys to the variant they add.
func (k keyMap) variantFor(msg tea.KeyPressMsg) (toast.Variant, bool) {
	switch {
	case key.Matches(msg, k.Success):
		return toast.VariantSuccess, true
	case key.Matches(msg, k.Error):
		return toast.VariantError, true
	case key.Matches(msg, k.Warning):
		return toast.VariantWarning, true
	case key.Matches(msg, k.Info):
		return toast.VariantInfo, true
	case key.Matches(msg, k.Default):
		return toast.VariantDefault, true
	}
	return "", false
}
