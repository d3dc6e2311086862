package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// InvalidArgument is returned when an argument or configuration value is invalid.
	InvalidArgument = ErrorKind("Invalid Argument")

	// Unsupported is returned when a feature, network or datasource is not supported.
	Unsupported = ErrorKind("Unsupported")

	// Unauthorized is returned when the wallet session can't sign transactions.
	Unauthorized = ErrorKind("Unauthorized")

	// Timeout is returned when an operation exceeds its deadline.
	Timeout = ErrorKind("Timeout")

	// SomethingWentWrong is returned for unexpected internal failures.
	SomethingWentWrong = ErrorKind("Something Went Wrong")

	// Closed is returned when an event doesn't accept new purchases.
	Closed = ErrorKind("Closed")

	// SoldOut is returned when a ticket type has no remaining supply.
	SoldOut = ErrorKind("Sold Out")

	// InsufficientFunds is returned when the wallet balance can't cover a payment.
	InsufficientFunds = ErrorKind("Insufficient Funds")

	// OverflowUint64 is returned when a numeric value doesn't fit its target type.
	OverflowUint64 = ErrorKind("overflow uint64")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
