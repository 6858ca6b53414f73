package network

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownCodec is returned by CodecByName for unsupported names.
var ErrUnknownCodec = errors.New("unknown codec")

// Codec encodes events as {type, payload} envelopes.
type Codec interface {
	Name() string
	// Binary reports whether frames should be sent as binary messages.
	Binary() bool
	EncodeEnvelope(event string, payload any) ([]byte, error)
	// DecodeEnvelope returns the event name and the still-encoded payload.
	DecodeEnvelope(data []byte) (string, []byte, error)
	Unmarshal(data []byte, v any) error
	Marshal(v any) ([]byte, error)
}

// CodecByName returns the codec registered under name.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

// JSONCodec encodes envelopes as JSON text.
type JSONCodec struct{}

type jsonEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (JSONCodec) Name() string { return "json" }
func (JSONCodec) Binary() bool { return false }

func (c JSONCodec) EncodeEnvelope(event string, payload any) ([]byte, error) {
	raw, err := c.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", event, err)
	}
	return json.Marshal(jsonEnvelope{Type: event, Payload: raw})
}

func (JSONCodec) DecodeEnvelope(data []byte) (string, []byte, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", nil, fmt.Errorf("decoding envelope: %w", err)
	}
	if env.Type == "" {
		return "", nil, errors.New("envelope without type")
	}
	return env.Type, env.Payload, nil
}

func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSONCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }

// MsgpackCodec encodes envelopes as MessagePack.
type MsgpackCodec struct{}

type msgpackEnvelope struct {
	Type    string             `msgpack:"type"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

func (MsgpackCodec) Name() string { return "msgpack" }
func (MsgpackCodec) Binary() bool { return true }

func (c MsgpackCodec) EncodeEnvelope(event string, payload any) ([]byte, error) {
	raw, err := c.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", event, err)
	}
	return msgpack.Marshal(&msgpackEnvelope{Type: event, Payload: raw})
}

func (MsgpackCodec) DecodeEnvelope(data []byte) (string, []byte, error) {
	var env msgpackEnvelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return "", nil, fmt.Errorf("decoding envelope: %w", err)
	}
	if env.Type == "" {
		return "", nil, errors.New("envelope without type")
	}
	return env.Type, env.Payload, nil
}

func (MsgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
func (MsgpackCodec) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
