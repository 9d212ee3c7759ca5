package app

import (
	"fmt"
	"strings"

	"github.com/aretw0/docprotocol/pkg/core"
)

// View names the screen the user is on.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewList      View = "list"
	ViewNew       View = "new"
	ViewAssist    View = "assist"
)

// Views lists every view in tab order.
var Views = []View{ViewDashboard, ViewList, ViewNew, ViewAssist}

// Label returns the tab title shown to users.
func (v View) Label() string {
	switch v {
	case ViewDashboard:
		return "Painel"
	case ViewList:
		return "Protocolos"
	case ViewNew:
		return "Novo"
	case ViewAssist:
		return "Assistente IA"
	default:
		return string(v)
	}
}

// ParseView accepts a view name in any case.
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Views {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// State is everything the user interface renders besides the records.
type State struct {
	View   View
	Query  string
	Draft  core.Draft
	Notice string // last alert or confirmation shown to the user
	Busy   bool   // an assist request is running
}

func initialState() State {
	return State{
		View:  ViewDashboard,
		Draft: core.DefaultDraft(),
	}
}
