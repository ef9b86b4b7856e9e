package transport

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
)

// MessageType tags inbound envelopes from the host.
type MessageType string

const (
	TypeDataUpdate MessageType = "dataupdate"
	TypeCallback   MessageType = "callback"
)

// NoCallback is the callback id sent when no reply is expected.
const NoCallback int64 = -1

var (
	// ErrBridgeUnavailable is returned by Send when no host connection is attached.
	ErrBridgeUnavailable = errors.New("native bridge unavailable")
	// ErrInvalidEnvelope marks inbound or outbound envelopes that fail to decode or validate.
	ErrInvalidEnvelope = errors.New("invalid envelope")
)

// Message is a request addressed to the native host.
type Message struct {
	Namespace          domain.Namespace `json:"namespace" validate:"required"`
	FunctionDefinition string           `json:"functionDefinition" validate:"required"`
	Data               any              `json:"data"`
}

// Outbound is the envelope written to the host.
type Outbound struct {
	Payload    Message `json:"payload"`
	CallbackID int64   `json:"callbackId"`
}

// Inbound is the envelope received from the host.
type Inbound struct {
	Type       MessageType     `json:"type"`
	Data       json.RawMessage `json:"data"`
	CallbackID *int64          `json:"callbackId,omitempty"`
}

// DataUpdate is the data of a dataupdate envelope.
type DataUpdate struct {
	Namespace string          `json:"namespace"`
	Payload   json.RawMessage `json:"payload"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())
