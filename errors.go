package zoneamento

import "errors"

// ErrInsufficientInput indicates that fewer than two layers matched either
// naming convention. It is the only terminal condition of a run; the caller
// must stop without performing any geometry work.
var ErrInsufficientInput = errors.New("insufficient input: need at least two matching layers")

// ErrInvalidLayer indicates that a referenced layer is missing or structurally
// invalid for the requested operation.
var ErrInvalidLayer = errors.New("invalid layer")
