// Package core holds the protocol record model, the storage port and the
// service that enforces the record lifecycle.
package core

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a protocol.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSigned    Status = "SIGNED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusSigned, StatusDelivered, StatusCancelled}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSigned, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Label returns the human readable name shown in lists and badges.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusSigned:
		return "Assinado"
	case StatusDelivered:
		return "Entregue"
	case StatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

// ParseStatus accepts the canonical value or the label, case-insensitively.
func ParseStatus(s string) (Status, error) {
	v := strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(v, string(st)) || strings.EqualFold(v, st.Label()) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Type tells whether the protocol tracks a paper or an electronic document.
type Type string

const (
	TypePhysical Type = "PHYSICAL"
	TypeDigital  Type = "DIGITAL"
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	return t == TypePhysical || t == TypeDigital
}

// Label returns the human readable name of the type.
func (t Type) Label() string {
	switch t {
	case TypePhysical:
		return "Físico"
	case TypeDigital:
		return "Digital"
	}
	return string(t)
}

// ParseType accepts the canonical value or the label, case-insensitively.
func ParseType(s string) (Type, error) {
	v := strings.TrimSpace(s)
	for _, t := range []Type{TypePhysical, TypeDigital} {
		if strings.EqualFold(v, string(t)) || strings.EqualFold(v, t.Label()) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown protocol type %q", s)
}

// Priority is the urgency suggested by the assistant.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is empty or a known priority.
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Categories is the suggestion list offered by the creation form.
// Category stays free text; these are only hints.
var Categories = []string{"Contrato", "Financeiro", "RH", "Jurídico", "Ofício", "Outros"}

// Protocol is one tracked document.
type Protocol struct {
	ID          string    `json:"id" yaml:"id"`
	Code        string    `json:"code" yaml:"code"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Sender      string    `json:"sender" yaml:"sender"`
	Recipient   string    `json:"recipient" yaml:"recipient"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	Status      Status    `json:"status" yaml:"status"`
	Type        Type      `json:"type" yaml:"type"`
	Category    string    `json:"category" yaml:"category"`
	Priority    Priority  `json:"priority,omitempty" yaml:"priority,omitempty"`
	Attachments []string  `json:"attachments,omitempty" yaml:"attachments,omitempty"`
}

// Clone returns a deep copy so callers can never alias store state.
func (p Protocol) Clone() Protocol {
	if p.Attachments != nil {
		p.Attachments = append([]string(nil), p.Attachments...)
	}
	return p
}

// Draft is the editable form state a protocol is created from.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Sender      string   `json:"sender"`
	Recipient   string   `json:"recipient"`
	Type        Type     `json:"type"`
	Category    string   `json:"category"`
	Priority    Priority `json:"priority,omitempty"`
}

// DefaultDraft is the blank form: empty fields and a physical document.
func DefaultDraft() Draft {
	return Draft{Type: TypePhysical}
}

// Validate checks the required fields and returns a *ValidationError
// naming every one that is missing.
func (d Draft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Sender) == "" {
		missing = append(missing, "sender")
	}
	if strings.TrimSpace(d.Recipient) == "" {
		missing = append(missing, "recipient")
	}
	if d.Type != "" && !d.Type.Valid() {
		missing = append(missing, "type")
	}
	if !d.Priority.Valid() {
		missing = append(missing, "priority")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// EventType represents the kind of change applied to the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
)

// Event represents a change in the store.
type Event struct {
	Type      EventType
	ID        string
	Code      string
	Status    Status
	Timestamp int64 // Unix timestamp
}

// String renders the event for logs and lifecycle sources.
func (e Event) String() string {
	return fmt.Sprintf("%s %s (%s) %s", e.Type, e.Code, e.ID, e.Status)
}

type contextKey string

// ChangeReasonKey is the context key for passing an audit note (commit message)
// to versioned repositories.
const ChangeReasonKey contextKey = "change_reason"
