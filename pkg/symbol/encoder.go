// Package symbol generates the scannable QR assets embedded in labels.
//
// An [Encoder] turns one text payload into an in-memory [Asset]. Assets are
// never written to disk: concurrent batches encoding colliding payloads must
// not see each other's intermediates, so everything stays scoped to the
// single Encode call.
package symbol

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Recovery is the error-correction level of a generated symbol. Higher
// levels survive more physical damage at the cost of symbol density.
type Recovery int

const (
	// RecoveryLow tolerates ~7% damage. Default for label stock that is
	// printed once and scanned indoors.
	RecoveryLow Recovery = iota
	// RecoveryMedium tolerates ~15% damage.
	RecoveryMedium
	// RecoveryHigh tolerates ~25% damage.
	RecoveryHigh
	// RecoveryHighest tolerates ~30% damage.
	RecoveryHighest
)

// Sentinel errors for symbol generation.
var (
	// ErrEmptyPayload is returned when the payload has no content to encode.
	ErrEmptyPayload = errors.New("empty payload")

	// ErrEncode wraps failures from the underlying QR generator, including
	// payloads that exceed the maximum symbol capacity.
	ErrEncode = errors.New("encoding failed")
)

// String returns the human-readable level name.
func (r Recovery) String() string {
	switch r {
	case RecoveryLow:
		return "low"
	case RecoveryMedium:
		return "medium"
	case RecoveryHigh:
		return "high"
	case RecoveryHighest:
		return "highest"
	default:
		return fmt.Sprintf("recovery(%d)", int(r))
	}
}

// ParseRecovery converts a level name ("low", "medium", "high", "highest")
// into a Recovery value.
func ParseRecovery(s string) (Recovery, error) {
	switch s {
	case "low":
		return RecoveryLow, nil
	case "medium":
		return RecoveryMedium, nil
	case "high":
		return RecoveryHigh, nil
	case "highest":
		return RecoveryHighest, nil
	default:
		return 0, fmt.Errorf("invalid recovery level: %q (must be 'low', 'medium', 'high', or 'highest')", s)
	}
}

// Asset is one generated symbol, held entirely in memory.
type Asset struct {
	// Payload is the text encoded in the symbol.
	Payload string

	// PNG is the rendered raster image.
	PNG []byte
}

// DataURI returns the asset as an inline data URI suitable for embedding in
// vector documents.
func (a *Asset) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(a.PNG)
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithRecovery sets the error-correction level.
func WithRecovery(r Recovery) Option {
	return func(e *Encoder) { e.recovery = r }
}

// WithModulePixels sets the minimum rendered size of one symbol module in
// pixels. The smallest symbol version that holds the payload is always
// selected; this only scales the raster output.
func WithModulePixels(px int) Option {
	return func(e *Encoder) { e.modulePixels = px }
}

// Encoder generates symbol assets. The zero value is not usable; construct
// with New. An Encoder is stateless and safe for concurrent use.
type Encoder struct {
	recovery     Recovery
	modulePixels int
}

// New creates an encoder with recovery level low and 10 pixels per module.
func New(opts ...Option) *Encoder {
	e := &Encoder{recovery: RecoveryLow, modulePixels: 10}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode generates the symbol for payload. The symbol version is the
// smallest that holds the payload at the configured recovery level.
// It returns ErrEmptyPayload for an empty payload and wraps capacity
// overflows in ErrEncode.
func (e *Encoder) Encode(payload string) (*Asset, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}

	q, err := qrcode.New(payload, e.level())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	// A negative size renders at a fixed pixel count per module instead of
	// scaling to an absolute image size.
	png, err := q.PNG(-e.modulePixels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return &Asset{Payload: payload, PNG: png}, nil
}

func (e *Encoder) level() qrcode.RecoveryLevel {
	switch e.recovery {
	case RecoveryMedium:
		return qrcode.Medium
	case RecoveryHigh:
		return qrcode.High
	case RecoveryHighest:
		return qrcode.Highest
	default:
		return qrcode.Low
	}
}
