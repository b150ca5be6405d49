package rigging

import "errors"

var (
	ErrInsufficientPickPoints = errors.New("insufficient pick points")
	ErrSlingOverloaded        = errors.New("sling overloaded")
	ErrUnbalancedLoad         = errors.New("unbalanced load")
	ErrInvalidConfiguration   = errors.New("invalid rigging configuration")
	ErrSolveFailed            = errors.New("tension solve failed")
)
