package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	tab        key.Binding
	backtab    key.Binding
	quit       key.Binding
	forceQuit  key.Binding
	newSession key.Binding
	sync       key.Binding
	syncAlways key.Binding
	dismiss    key.Binding
	copy       key.Binding
	buildInfo  key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	tab:        key.NewBinding(key.WithKeys("tab")),
	backtab:    key.NewBinding(key.WithKeys("shift+tab")),
	quit:       key.NewBinding(key.WithKeys("q")),
	forceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
	newSession: key.NewBinding(key.WithKeys("n")),
	sync:       key.NewBinding(key.WithKeys("s")),
	syncAlways: key.NewBinding(key.WithKeys("ctrl+r")),
	dismiss:    key.NewBinding(key.WithKeys("ctrl+x")),
	copy:       key.NewBinding(key.WithKeys("c", "y")),
	buildInfo:  key.NewBinding(key.WithKeys("v")),
}
