package shell

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	submit key.Binding
	prev   key.Binding
	next   key.Binding
	clear  key.Binding
	quit   key.Binding
}

var keys = keyMap{
	submit: key.NewBinding(key.WithKeys("enter")),
	prev:   key.NewBinding(key.WithKeys("up")),
	next:   key.NewBinding(key.WithKeys("down")),
	clear:  key.NewBinding(key.WithKeys("ctrl+l")),
	quit:   key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d")),
}
