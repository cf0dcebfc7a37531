package markup

import (
	"golang.org/x/net/html"
)

// Action is the role of a cart control.
type Action string

const (
	ActionAdd    Action = "add"
	ActionInc    Action = "inc"
	ActionDec    Action = "dec"
	ActionRemove Action = "remove"
	ActionClear  Action = "clear"
)

// Valid reports whether a is a known cart action.
func (a Action) Valid() bool {
	switch a {
	case ActionAdd, ActionInc, ActionDec, ActionRemove, ActionClear:
		return true
	}
	return false
}

// Event is a routed click on a cart control.
type Event struct {
	Action Action
	// ItemID keys inc/dec/remove controls.
	ItemID string
	// Control is the element that carries the role. For adds it is the
	// extraction trigger.
	Control *Element
}

// Delegate routes a click on target to the nearest enclosing cart control.
// It returns false when the click did not land inside one.
func Delegate(target *html.Node) (Event, bool) {
	for n := target; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		e := &Element{n: n}
		if act, ok := e.Attr(AttrAction); ok {
			a := Action(act)
			if !a.Valid() {
				return Event{}, false
			}
			id, _ := e.Attr(AttrItemID)
			return Event{Action: a, ItemID: id, Control: e}, true
		}
		if e.HasClass(ClassAddButton) {
			return Event{Action: ActionAdd, Control: e}, true
		}
	}
	return Event{}, false
}
