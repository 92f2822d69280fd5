package matchingv1

import "github.com/NeedRelax/solana-orderbook/pkg/errors"

var (
	// ErrInvalidOrder is returned for a place request with a non-positive
	// price or quantity.
	ErrInvalidOrder = errors.NewErrorDetails(
		"order price and quantity must be positive",
		string(errors.DexInvalidOrder),
		"place",
	)

	// ErrCalculation is returned when price times quantity overflows uint64.
	ErrCalculation = errors.NewErrorDetails(
		"price times quantity overflows the integer domain",
		string(errors.DexCalculationError),
		"place",
	)

	// ErrOrderNotFound is returned when a cancel target is absent from both
	// sides of the book.
	ErrOrderNotFound = errors.NewErrorDetails(
		"the specified order could not be found",
		string(errors.DexOrderNotFound),
		"cancel",
	)

	// ErrOrderNotOwned is returned when a cancel is requested by a party
	// that does not own the order.
	ErrOrderNotOwned = errors.NewErrorDetails(
		"requester is not authorized to cancel this order",
		string(errors.DexOrderNotOwned),
		"cancel",
	)

	// ErrMakerAccountMismatch is returned when a resolved counter-party
	// settlement account does not match the popped maker order's owner.
	ErrMakerAccountMismatch = errors.NewErrorDetails(
		"resolved maker account does not match the order owner",
		string(errors.DexMakerAccountMismatch),
		"place",
	)
)
