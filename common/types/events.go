package types

import (
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
)

// Attribute is a single key/value pair of an event.
type Attribute = cmn.KVPair

// NewAttribute builds an attribute from string key and value.
func NewAttribute(key, value string) Attribute {
	return Attribute{Key: []byte(key), Value: []byte(value)}
}

// Event is a typed, ordered set of attributes describing one effect of a
// transaction.
type Event struct {
	Type       string
	Attributes []Attribute
}

func NewEvent(ty string, attrs ...Attribute) Event {
	return Event{Type: ty, Attributes: attrs}
}

// AppendAttributes returns a copy of e extended with attrs.
func (e Event) AppendAttributes(attrs ...Attribute) Event {
	res := Event{Type: e.Type, Attributes: make([]Attribute, 0, len(e.Attributes)+len(attrs))}
	res.Attributes = append(res.Attributes, e.Attributes...)
	res.Attributes = append(res.Attributes, attrs...)
	return res
}

// Events is a list of events in emission order.
type Events []Event

// ToABCIEvents converts events into the consensus engine representation.
func (es Events) ToABCIEvents() []abci.Event {
	res := make([]abci.Event, len(es))
	for i, e := range es {
		res[i] = abci.Event{Type: e.Type, Attributes: e.Attributes}
	}
	return res
}

// EventManager is the append-only event log of one transaction.
type EventManager struct {
	events Events
}

func NewEventManager() *EventManager {
	return &EventManager{events: Events{}}
}

// Events returns a snapshot of the log in emission order.
func (em *EventManager) Events() Events {
	res := make(Events, len(em.events))
	copy(res, em.events)
	return res
}

func (em *EventManager) EmitEvent(event Event) {
	em.events = append(em.events, event)
}

// EmitEvents appends events keeping their relative order.
func (em *EventManager) EmitEvents(events Events) {
	em.events = append(em.events, events...)
}
