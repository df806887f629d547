// Package calculus implements a 128-bit arbitrary-precision numeric kernel:
// an unsigned/signed 128-bit integer pair (U128, I128) with explicit
// overflow/NaN tracking instead of silent wraparound, a fixed-point signed
// Decimal type built on top of it, a probabilistic integer factorization
// engine, a deterministic LFSR-based pseudo-random generator, and a few
// supporting number-theory primitives.
//
// # Numeric singularities
//
// U128, I128, and Decimal never panic on a computed result: overflow and
// "not a number" are in-band states (see Singular) that propagate through
// every arithmetic operator. A singular value compares unequal to
// everything, including another singular value with the same flags, and is
// unordered relative to every other value. Only a literal zero divisor
// passed to a Low64/U128 operator panics, since that is a programmer
// contract violation rather than a representable numeric outcome.
//
// # Decimal
//
// Decimal represents integer + numerator/10^W for a process-wide width W
// in [0, 9]. Its sign lives either in the integer part ("strong negative",
// |v| >= 1) or in the numerator ("weak negative", |v| < 1); it is never
// carried by both at once. See SetWidth/Width for reconfiguring W and
// ParseDecimal/Decimal.String for the canonical textual form.
//
// # Codecs
//
// Decimal implements fmt.Stringer, encoding.TextMarshaler/TextUnmarshaler,
// json.Marshaler/Unmarshaler, encoding.BinaryMarshaler/BinaryUnmarshaler,
// database/sql.Scanner and database/sql/driver.Valuer (plus a NullDecimal
// wrapper), and a DynamoDB attribute-value codec.
//
// # Factorization and number theory
//
// Factorizer.Factor combines trial division, Fermat's method, Miller-Rabin
// primality testing, Pollard's rho, and Pollard's p-1 method, all
// cooperatively cancellable via a context.Context. NumberTheory exposes the
// shared primitives (gcd, modular multiplication/exponentiation, integer
// square root, quadratic residues) those algorithms are built from.
//
// # Calculator pipeline
//
// Calculator wires the arithmetic above into a small stateful dispatcher
// fed by two bounded channel-backed pipelines (requests in, results out),
// matching the original system's semaphore-gated ring buffers.
package calculus
