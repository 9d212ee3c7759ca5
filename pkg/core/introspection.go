package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	EventBufferSize int    `json:"event_buffer_size"`
	Subscribers     int    `json:"subscribers"`
	TerminalCancel  bool   `json:"terminal_cancel"`
	RepositoryType  string `json:"repository_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.subMu.Lock()
	subscribers := len(s.subs)
	s.subMu.Unlock()

	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	return ServiceState{
		EventBufferSize: s.eventBufferSize,
		Subscribers:     subscribers,
		TerminalCancel:  s.terminalCancel,
		RepositoryType:  repoType,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
