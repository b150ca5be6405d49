package crane

import (
	"errors"
	"fmt"
)

// Configuration error kinds, matched with errors.Is
var (
	ErrBoomLengthOutOfRange      = errors.New("boom length out of range")
	ErrBoomAngleInvalid          = errors.New("boom angle invalid")
	ErrRadiusOutOfRange          = errors.New("radius out of range")
	ErrHeightExceeded            = errors.New("hook height exceeded")
	ErrLoadExceedsCapacity       = errors.New("load exceeds capacity")
	ErrOutriggerPositionInvalid  = errors.New("outrigger position invalid")
	ErrOutriggerExtensionInvalid = errors.New("outrigger extension invalid")
	ErrCounterweightInvalid      = errors.New("counterweight invalid")
	ErrCapacityChartNotFound     = errors.New("capacity chart not found")
	ErrUnsafeConfiguration       = errors.New("unsafe configuration")
)

// ConfigError describes the first constraint a crane configuration violates.
// Current, Min and Max carry the offending value and its limits where they
// apply (meters, degrees or kilograms depending on Kind).
type ConfigError struct {
	Kind    error
	Current float64
	Min     float64
	Max     float64
	Radius  float64
	Reason  string
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case ErrBoomLengthOutOfRange:
		return fmt.Sprintf("boom length %.1fm is out of range (%.1fm - %.1fm)", e.Current, e.Min, e.Max)
	case ErrBoomAngleInvalid:
		return fmt.Sprintf("boom angle %.1f° is invalid (must be %.0f-%.0f°)", e.Current, e.Min, e.Max)
	case ErrRadiusOutOfRange:
		return fmt.Sprintf("radius %.1fm is out of range (%.1fm - %.1fm)", e.Current, e.Min, e.Max)
	case ErrHeightExceeded:
		return fmt.Sprintf("hook height %.1fm exceeds maximum %.1fm", e.Current, e.Max)
	case ErrLoadExceedsCapacity:
		return fmt.Sprintf("load %.0fkg exceeds capacity %.0fkg at %.1fm radius", e.Current, e.Max, e.Radius)
	case ErrOutriggerPositionInvalid:
		return fmt.Sprintf("invalid outrigger position: %s", e.Reason)
	case ErrOutriggerExtensionInvalid:
		return fmt.Sprintf("outrigger extension %.1fm out of range (%.1fm - %.1fm)", e.Current, e.Min, e.Max)
	case ErrCounterweightInvalid:
		return fmt.Sprintf("counterweight %.0fkg invalid (must be %.0fkg - %.0fkg)", e.Current, e.Min, e.Max)
	case ErrCapacityChartNotFound:
		return fmt.Sprintf("no capacity chart found for boom length %.1fm", e.Current)
	case ErrUnsafeConfiguration:
		return fmt.Sprintf("unsafe configuration: %s", e.Reason)
	}
	return e.Kind.Error()
}

// Unwrap exposes Kind to errors.Is
func (e *ConfigError) Unwrap() error {
	return e.Kind
}

func rangeErr(kind error, current, min, max float64) *ConfigError {
	return &ConfigError{Kind: kind, Current: current, Min: min, Max: max}
}

func unsafeErr(format string, args ...any) *ConfigError {
	return &ConfigError{Kind: ErrUnsafeConfiguration, Reason: fmt.Sprintf(format, args...)}
}
