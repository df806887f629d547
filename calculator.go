package calculus

import (
	"context"
	"errors"
	"sync"
)

// Operation identifies an arithmetic or control request accepted by
// Calculator, grounded on the original's OperationEnums::Operations /
// calculus::Ops (the two enums are reconciled here into one signed integer
// sequence matching the external wire table).
type Operation int32

const (
	OpClearAll   Operation = -2
	OpEqual      Operation = -1
	OpAdd        Operation = 0
	OpSub        Operation = 1
	OpMult       Operation = 2
	OpDiv        Operation = 3
	opSeparator  Operation = 4 // boundary marker; never a valid request
	OpSqrt       Operation = 5
	OpSqr        Operation = 6
	OpReciprocal Operation = 7
	OpNegation   Operation = 8
	OpFactor     Operation = 9
	OpMaxValue   Operation = 10
	OpRandInt    Operation = 11
	OpRandInt64  Operation = 12
)

func (op Operation) isTwoOperand() bool { return op >= OpAdd && op < opSeparator }
func (op Operation) isOneOperand() bool { return op > opSeparator && op < OpFactor }

// State is the calculator's operation-chaining state, grounded on
// AppCore::mState / StateEnums::States.
type State int

const (
	StateResetted State = iota - 1
	StateEqualToOp
	StateEqualsLoop
	StateOpLoop
	StateOpToEqual
)

// ErrorCode is the wire-level numeric error code surfaced at the Result
// boundary, grounded on the original's Errors enum.
type ErrorCode int32

const (
	ErrCodeNone ErrorCode = iota
	ErrCodeUnknownOp
	ErrCodeZeroDivision
	ErrCodeNotFinite
)

// errorCodeFor maps an Apply/Factor error to its wire error code.
func errorCodeFor(err error) ErrorCode {
	switch {
	case err == nil:
		return ErrCodeNone
	case errors.Is(err, ErrUnknownOp):
		return ErrCodeUnknownOp
	case errors.Is(err, ErrDivideByZero):
		return ErrCodeZeroDivision
	default:
		return ErrCodeNotFinite
	}
}

// Apply is the pure arithmetic dispatcher behind every request, grounded on
// calculus::doIt. x is the left operand (the accumulator), y the right
// operand; one-operand requests pass the same Decimal for both. Unlike the
// original, it does not re-derive overflow from a same-sign comparison
// before trusting Mul/Quo's own overflow flag (see DESIGN.md's Open
// Question resolution on doIt's redundant double-check).
func Apply(op Operation, x, y Decimal) (result Decimal, exactSqrt bool, err error) {
	switch op {
	case OpAdd:
		return x.Add(y), false, nil
	case OpSub:
		return x.Sub(y), false, nil
	case OpMult:
		r := x.Mul(y)
		if r.IsOverflowed() {
			return r, false, ErrNotFinite
		}
		return r, false, nil
	case OpDiv:
		if y.IsZero() {
			return Decimal{}, false, ErrDivideByZero
		}
		r := x.Quo(y)
		if r.IsOverflowed() {
			return r, false, ErrNotFinite
		}
		return r, false, nil
	case OpSqrt:
		r, exact, serr := x.SqrtExact()
		if serr != nil {
			return Decimal{}, false, ErrNotFinite
		}
		return r, exact, nil
	case OpSqr:
		r := x.Mul(x)
		if r.IsOverflowed() {
			return r, false, ErrNotFinite
		}
		return r, false, nil
	case OpReciprocal:
		if x.IsZero() {
			return Decimal{}, false, ErrDivideByZero
		}
		one := NewDecimalFromParts(OneU128, ZeroU128)
		r := one.Quo(x)
		if r.IsOverflowed() {
			return r, false, ErrNotFinite
		}
		return r, false, nil
	case OpNegation:
		return ZeroDecimal().Sub(x), false, nil
	default:
		return Decimal{}, false, ErrUnknownOp
	}
}

// Calculator drives the two-register chaining state machine described in
// SPEC_FULL.md §4.9, grounded on AppCore::process/DoWork. It does not itself
// perform arithmetic: two-operand operations and Factor are dispatched as
// Requests for a Pipeline to execute (§5); one-operand arithmetic is cheap
// enough that callers may also invoke Apply directly, but Submit still
// routes it through the Pipeline so every computation is observable on the
// same Result stream.
type Calculator struct {
	mu     sync.Mutex
	reg    [2]Decimal // reg[1] is the accumulator/left operand, reg[0] the right operand
	op     Operation  // the two-operand operation currently pending or last applied
	state  State
	reqSeq int32

	factorCancel context.CancelFunc
}

// NewCalculator returns a Calculator in its initial Resetted state.
func NewCalculator() *Calculator {
	c := &Calculator{}
	c.Reset()
	return c
}

// Reset returns the calculator to its initial state and cancels any
// in-flight factorization, mirroring AppCore::_reset plus the CLEAR_ALL
// handler's stop_calculation signal.
func (c *Calculator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Calculator) resetLocked() {
	if c.factorCancel != nil {
		c.factorCancel()
		c.factorCancel = nil
	}
	c.reg = [2]Decimal{}
	c.op = OpClearAll
	c.state = StateResetted
}

// State reports the calculator's current chaining state.
func (c *Calculator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit feeds a newly entered operand and requested operation through the
// chaining state machine, returning the Request to enqueue on a Pipeline.
// ok is false when the call only latches an operand for a later request
// (e.g. the left operand of a fresh two-operand chain, awaiting its right
// operand). ctx is the parent cancellation context; for Factor requests a
// child context is derived and retained so a later Reset can cancel the
// factorization in flight.
func (c *Calculator) Submit(ctx context.Context, value Decimal, requested Operation) (Request, bool, error) {
	if requested == OpClearAll {
		c.Reset()
		return Request{}, false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if requested == OpFactor {
		if c.state == StateEqualToOp || c.state == StateOpLoop {
			return Request{}, false, ErrFactorPending
		}
		factorCtx, cancel := context.WithCancel(ctx)
		c.factorCancel = cancel
		req := c.buildRequestLocked(OpFactor, value, value)
		req.ctx = factorCtx
		return req, true, nil
	}

	twoOperand := requested.isTwoOperand()
	stateIsOperation := c.state == StateEqualToOp || c.state == StateOpLoop
	stateIsEqual := c.state == StateEqualsLoop || c.state == StateOpToEqual
	stateIsResetted := c.state == StateResetted

	// A second two-operand operation arrives while one is already pending:
	// run the pending op against the just-entered right operand, then latch
	// the new operation and operand as the start of the next round.
	if twoOperand && stateIsOperation {
		req := c.buildRequestLocked(c.op, c.reg[1], value)
		c.reg[0] = value
		c.op = requested
		c.state = StateOpLoop
		return req, true, nil
	}

	if requested == OpEqual {
		if stateIsOperation {
			// First "=" after a binary op: run it and remember the right
			// operand in case "=" is pressed again.
			req := c.buildRequestLocked(c.op, c.reg[1], value)
			c.reg[0] = value
			c.state = StateOpToEqual
			return req, true, nil
		}
		// Repeated "=": rerun the same operation against the same stored
		// right operand.
		req := c.buildRequestLocked(c.op, c.reg[1], c.reg[0])
		c.state = StateEqualsLoop
		return req, true, nil
	}

	if requested.isOneOperand() {
		return c.buildRequestLocked(requested, value, value), true, nil
	}

	// A fresh two-operand chain: latch the left operand and the requested
	// operation, then wait for the right operand.
	c.op = requested
	if stateIsEqual {
		c.state = StateEqualToOp
	}
	if stateIsResetted {
		c.reg[1] = value
		c.state = StateEqualToOp
	}
	return Request{}, false, nil
}

func (c *Calculator) buildRequestLocked(op Operation, x, y Decimal) Request {
	c.reqSeq++
	return Request{ID: c.reqSeq, Operation: op, Operands: [2]Decimal{x, y}}
}

// ApplyResult folds a completed Result back into the accumulator register so
// a subsequent chained operation sees it as its left operand, mirroring
// AppCore::handle_results. A non-zero error code resets the calculator
// instead, matching the original's error-path Reset.
func (c *Calculator) ApplyResult(res Result) {
	if res.Error != ErrCodeNone {
		c.Reset()
		return
	}
	if len(res.Result) == 0 {
		return
	}
	c.mu.Lock()
	c.reg[1] = res.Result[0]
	c.mu.Unlock()
}
