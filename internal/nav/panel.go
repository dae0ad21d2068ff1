package nav

import (
	"errors"
	"fmt"
)

// PanelState is the current view of the blog's slide-out panel.
type PanelState string

const (
	PanelPosts      PanelState = "posts"
	PanelCategories PanelState = "categories"
	PanelHeaders    PanelState = "headers"
)

// Event drives the panel.
type Event string

const (
	EventShowCategories Event = "show_categories"
	EventSelectCategory Event = "select_category"
	EventSelectPost     Event = "select_post"
	EventBack           Event = "back"
)

// ErrInvalidTransition is returned for an event the current state does not accept.
var ErrInvalidTransition = errors.New("invalid panel transition")

// Transition is one edge of the panel state machine.
type Transition struct {
	From  PanelState `json:"from"`
	Event Event      `json:"event"`
	To    PanelState `json:"to"`
}

var transitions = []Transition{
	{PanelPosts, EventShowCategories, PanelCategories},
	{PanelPosts, EventSelectPost, PanelHeaders},
	{PanelCategories, EventSelectCategory, PanelPosts},
	{PanelCategories, EventSelectPost, PanelHeaders},
}

// Transitions returns the forward edges. Back is implicit: it returns to
// the state the panel was in before the last forward move.
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}

// Panel tracks the slide-out panel. The zero value is not usable; call NewPanel.
type Panel struct {
	state    PanelState
	history  []panelFrame
	Category string
	Post     string
}

type panelFrame struct {
	state    PanelState
	category string
	post     string
}

// NewPanel returns a panel showing the post list.
func NewPanel() *Panel {
	return &Panel{state: PanelPosts}
}

// State returns the current view.
func (p *Panel) State() PanelState { return p.state }

// Depth is the number of Back moves available.
func (p *Panel) Depth() int { return len(p.history) }

// Fire applies ev. arg names the selected category or post for the
// select events and is ignored otherwise. Back at the root is a no-op.
func (p *Panel) Fire(ev Event, arg string) error {
	if ev == EventBack {
		p.Back()
		return nil
	}
	for _, t := range transitions {
		if t.From != p.state || t.Event != ev {
			continue
		}
		p.history = append(p.history, panelFrame{p.state, p.Category, p.Post})
		p.state = t.To
		switch ev {
		case EventSelectCategory:
			p.Category = arg
		case EventSelectPost:
			p.Post = arg
		}
		return nil
	}
	return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, ev, p.state)
}

// Back retraces one level.
func (p *Panel) Back() {
	n := len(p.history)
	if n == 0 {
		return
	}
	f := p.history[n-1]
	p.history = p.history[:n-1]
	p.state, p.Category, p.Post = f.state, f.category, f.post
}
