package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tornado-matcher/matcher/pkg/value"
)

// Iterator holds the current element and iteration key when evaluation is
// inside an Iterator subtree. Outside an Iterator subtree, an
// Event's Iterator field is nil and any `event.iterator.*` accessor fails
// with AccessorError.
type Iterator struct {
	// Item is the current element: an array element or a map value.
	Item value.Value
	// Iteration is the index (Number, for arrays) or key (String, for
	// maps) identifying Item's position in the source collection.
	Iteration value.Value
}

// Event is the canonical structured record the matcher evaluates.
type Event struct {
	Type      string
	CreatedMs int64
	Metadata  *value.Map
	Payload   *value.Map
	Iterator  *Iterator
	TraceID   string
}

// New builds an Event, always setting CreatedMs to the current wall time
// and TraceID to a fresh UUID (it takes no parameters for either); nil
// metadata or payload become empty maps.
func New(eventType string, metadata, payload *value.Map) (*Event, error) {
	if eventType == "" {
		return nil, ErrEmptyType
	}
	if metadata == nil {
		metadata = value.NewMap()
	}
	if payload == nil {
		payload = value.NewMap()
	}
	return &Event{
		Type:      eventType,
		CreatedMs: time.Now().UnixMilli(),
		Metadata:  metadata,
		Payload:   payload,
		TraceID:   uuid.NewString(),
	}, nil
}

type wireEvent struct {
	Type      string          `json:"type"`
	CreatedMs *int64          `json:"created_ms"`
	TraceID   string          `json:"trace_id"`
	Metadata  json.RawMessage `json:"metadata"`
	Payload   json.RawMessage `json:"payload"`
}

// FromJSON parses the canonical wire format:
//
//	{ "type": "<string>", "created_ms": <int>, "trace_id": "<uuid?>",
//	  "metadata": { ... }, "payload": { ... } }
//
// A missing trace_id is assigned a fresh UUID; a missing created_ms is
// assigned the current wall time in milliseconds.
func FromJSON(data []byte) (*Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("event: failed to parse: %w", err)
	}
	if w.Type == "" {
		return nil, ErrEmptyType
	}

	metadata, err := parseMapField(w.Metadata)
	if err != nil {
		return nil, fmt.Errorf("event: invalid metadata: %w", err)
	}
	payload, err := parseMapField(w.Payload)
	if err != nil {
		return nil, fmt.Errorf("event: invalid payload: %w", err)
	}

	ev := &Event{
		Type:     w.Type,
		Metadata: metadata,
		Payload:  payload,
	}
	if w.CreatedMs != nil {
		ev.CreatedMs = *w.CreatedMs
	} else {
		ev.CreatedMs = time.Now().UnixMilli()
	}
	if w.TraceID != "" {
		ev.TraceID = w.TraceID
	} else {
		ev.TraceID = uuid.NewString()
	}
	return ev, nil
}

func parseMapField(raw json.RawMessage) (*value.Map, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return value.NewMap(), nil
	}
	v, err := value.ParseJSON(raw)
	if err != nil {
		return nil, err
	}
	m, ok := v.AsMap()
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", v.Kind())
	}
	return m, nil
}

// WithIterator returns a shallow copy of ev scoped to one Iterator
// element. The original Event (and any ancestor iteration) is left
// untouched.
func (ev *Event) WithIterator(item, iteration value.Value) *Event {
	clone := *ev
	clone.Iterator = &Iterator{Item: item, Iteration: iteration}
	return &clone
}
