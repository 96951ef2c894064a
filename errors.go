package newgame

import "errors"

// Sentinel errors returned by trade and navigation operations. Every one of
// them is recoverable at the call site: a rejected operation leaves the
// session state exactly as it was.
var (
	// ErrPriceUnavailable means no price exists at or before the requested date.
	ErrPriceUnavailable = errors.New("no price available at or before this date")

	// ErrInstrumentUnavailable means the market is closed for this
	// instrument/date combination (weekend for equities, pre-inception for
	// crypto).
	ErrInstrumentUnavailable = errors.New("instrument is not tradable on this date")

	// ErrInsufficientFunds means a buy's cost exceeds the available cash.
	ErrInsufficientFunds = errors.New("insufficient cash")

	// ErrInsufficientHoldings means a sell was requested on an instrument
	// with no holding at all. Selling more than held is not an error; the
	// quantity clamps to the full position.
	ErrInsufficientHoldings = errors.New("no holding to sell")

	// ErrInvalidQuantity means the resolved trade quantity was zero or
	// negative after quantization.
	ErrInvalidQuantity = errors.New("trade quantity must be positive")

	// ErrBackwardJump means an explicit date-jump target precedes the
	// current date. Time travel is forward-only within a session.
	ErrBackwardJump = errors.New("jump target precedes current date")

	// ErrUnknownInstrument means the symbol is not present in the catalog.
	ErrUnknownInstrument = errors.New("unknown instrument")
)
