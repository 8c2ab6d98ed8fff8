package sensor

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message types exchanged with the tracker page.
const (
	MsgHello   = "hello"
	MsgTip     = "tip"
	MsgWelcome = "welcome"
)

const ProtocolVersion = 1

// Envelope wraps every message: T names the payload type.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

type Hello struct {
	V    int    `json:"v"`
	Name string `json:"name,omitempty"`
}

// Tip is the index fingertip of the first detected hand, in normalised
// camera coordinates (0..1, origin top-left, not mirrored).
type Tip struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Detected bool    `json:"detected"`
}

type Welcome struct {
	V      int `json:"v"`
	TickHz int `json:"tickHz"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("encode: empty message type")
	}
	if payload == nil {
		return nil, fmt.Errorf("encode %s: nil payload", t)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, errors.New("decode: empty message")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if e.T == "" {
		return Envelope{}, errors.New("decode: missing message type")
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", env.T, err)
	}
	return out, nil
}
