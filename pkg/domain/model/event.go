package model

// EventKind identifies which of the host's creation event shapes was received
type EventKind string

const (
	EventKindCreateCi  EventKind = "create_ci"
	EventKindCreateCis EventKind = "create_cis"
	EventKindCiEvent   EventKind = "ci_event"
)

// CIEvent is any host event that carries configuration items
type CIEvent interface {
	Kind() EventKind
	Items() []ConfigurationItem
}

// CreateCiCommand is published when a single CI is created
type CreateCiCommand struct {
	CI ConfigurationItem `json:"ci"`
}

func (x *CreateCiCommand) Kind() EventKind            { return EventKindCreateCi }
func (x *CreateCiCommand) Items() []ConfigurationItem { return []ConfigurationItem{x.CI} }

// CreateCisCommand is published when several CIs are created at once
type CreateCisCommand struct {
	CIs []ConfigurationItem `json:"cis"`
}

func (x *CreateCisCommand) Kind() EventKind            { return EventKindCreateCis }
func (x *CreateCisCommand) Items() []ConfigurationItem { return x.CIs }

// CiEvent is the generic CI carrying event of the host bus
type CiEvent struct {
	Type string              `json:"type,omitempty"`
	CIs  []ConfigurationItem `json:"cis"`
}

func (x *CiEvent) Kind() EventKind            { return EventKindCiEvent }
func (x *CiEvent) Items() []ConfigurationItem { return x.CIs }
