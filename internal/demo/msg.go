package demo

import (
	"encoding/json"
	"fmt"

	"github.com/thruflo/overlook/internal/inspect"
)

// Increment adds By to the count.
type Increment struct{ By int }

// Decrement subtracts By from the count.
type Decrement struct{ By int }

// Reset sets the count back to zero.
type Reset struct{}

// SetStep changes how much the keys add or subtract.
type SetStep struct{ Step int }

// Tick is sent by the ticker.
type Tick struct{}

func (m Increment) Inspect() inspect.Value { return inspect.Ctor("Increment", inspect.Int(m.By)) }
func (m Decrement) Inspect() inspect.Value { return inspect.Ctor("Decrement", inspect.Int(m.By)) }
func (Reset) Inspect() inspect.Value       { return inspect.Ctor("Reset") }
func (m SetStep) Inspect() inspect.Value   { return inspect.Ctor("SetStep", inspect.Int(m.Step)) }
func (Tick) Inspect() inspect.Value        { return inspect.Ctor("Tick") }

// envelope is the saved form of every message.
type envelope struct {
	Type string `json:"type"`
	N    int    `json:"n,omitempty"`
}

func (m Increment) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelope{Type: "increment", N: m.By})
}

func (m Decrement) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelope{Type: "decrement", N: m.By})
}

func (Reset) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelope{Type: "reset"})
}

func (m SetStep) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelope{Type: "step", N: m.Step})
}

func (Tick) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelope{Type: "tick"})
}

// DecodeMsg restores a message saved with its MarshalJSON.
func DecodeMsg(data []byte) (any, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	switch env.Type {
	case "increment":
		return Increment{By: env.N}, nil
	case "decrement":
		return Decrement{By: env.N}, nil
	case "reset":
		return Reset{}, nil
	case "step":
		return SetStep{Step: env.N}, nil
	case "tick":
		return Tick{}, nil
	}
	return nil, fmt.Errorf("decode message: unknown type %q", env.Type)
}
