package calculus

import "fmt"

var (
	// ErrWidthOutOfRange is returned when SetWidth is called with W outside [0, 9].
	ErrWidthOutOfRange = fmt.Errorf("decimal width out of range: must be between 0 and %d", MaxWidth)

	// ErrEmptyString is returned when parsing an empty decimal string.
	ErrEmptyString = fmt.Errorf("can't parse empty string")

	// ErrMaxStrLen is returned when a decimal string exceeds the cache's bound.
	ErrMaxStrLen = fmt.Errorf("string input exceeds maximum length %d", maxDecimalStrLen)

	// ErrInvalidFormat is returned when a decimal string is not of the form
	// [-]digits[,|.]digits.
	ErrInvalidFormat = fmt.Errorf("invalid decimal format")

	// ErrDivideByZero is returned when dividing a Decimal by zero.
	ErrDivideByZero = fmt.Errorf("can't divide by zero")

	// ErrSqrtNegative is returned when taking the square root of a negative Decimal.
	ErrSqrtNegative = fmt.Errorf("can't calculate square root of a negative number")

	// ErrInvalidBinaryData is returned by UnmarshalBinary on malformed input.
	ErrInvalidBinaryData = fmt.Errorf("invalid binary data")

	// ErrUnknownOp is returned by the calculator dispatcher for an unrecognized operation code.
	ErrUnknownOp = fmt.Errorf("unknown operation")

	// ErrFactorPending is returned when Factor is requested while a binary
	// operation is still awaiting its second operand.
	ErrFactorPending = fmt.Errorf("can't factor while an operation is pending a second operand")

	// ErrUnsupportedAttributeValue is returned by UnmarshalDynamoDBAttributeValue
	// for an attribute kind Decimal can't represent (e.g. a boolean).
	ErrUnsupportedAttributeValue = fmt.Errorf("unsupported DynamoDB attribute value for Decimal")

	// ErrCannotFactorZero is returned by Factorizer.Factor for a zero input.
	ErrCannotFactorZero = fmt.Errorf("zero has no prime factorization")

	// ErrCannotFactorSingular is returned by Factorizer.Factor for an overflowed or NaN input.
	ErrCannotFactorSingular = fmt.Errorf("can't factor a singular value")

	// ErrFactorNotFound is returned when Pollard's rho and p-1 methods both
	// exhaust their iteration bound without splitting a composite.
	ErrFactorNotFound = fmt.Errorf("factorization did not converge within its iteration bound")

	// ErrNotFinite is returned by Apply when an otherwise-valid arithmetic
	// operation produces an overflowed Decimal result, and when the square
	// root is taken of a negative operand.
	ErrNotFinite = fmt.Errorf("result is not finite")
)
