package calculus

import (
	"context"
	"errors"
	"time"
)

// BufferSize is the pipeline's ring capacity, grounded on
// original_source/app_core/types.h's tp::BUFFER_SIZE.
const BufferSize = 256

// requestPollInterval bounds how long Run can block before rechecking
// ctx.Done(), grounded on original_source/app_core/observers.h's
// request_time (the original's separate result_time cadence for
// ResultObserver collapses into this same loop, since here one worker
// goroutine both computes and enqueues results instead of three threads
// polling independent semaphores).
const requestPollInterval = 600 * time.Millisecond

// Request is a single unit of pipeline work: an operation code plus its two
// operands (Factor uses both slots for the same value). ID is echoed back
// on the matching Result so producer/consumer order can be reconstructed
// across the two independent channels (§5's ordering guarantee). ctx is
// internal plumbing for per-request cancellation (Factor only) and carries
// no wire representation.
type Request struct {
	ID        int32
	Operation Operation
	Operands  [2]Decimal

	ctx context.Context
}

// Result is the completed computation echoed back to the caller. For
// Factor, Result is the flattened [prime_0, power_0, prime_1, power_1, ...]
// sequence described in SPEC_FULL.md §6; Factorizer.Factor itself returns
// the richer []PrimePower, flattened only at this boundary.
type Result struct {
	ID        int32
	Error     ErrorCode
	Operation Operation
	ExactSqrt bool
	Result    []Decimal
}

// Pipeline is a pair of bounded, single-producer/single-consumer channels
// standing in for the original's semaphore-gated ring buffers (requests_free
// /requests_used/results_free/results_used over a QVector ring): a channel
// send blocks exactly like acquiring the free-slots semaphore and releasing
// the used-slots one, and a receive is the reverse. Run's select/ticker loop
// stands in for RequestObserver/ResultObserver's tryAcquire-with-timeout
// polling against a stop flag.
type Pipeline struct {
	requests chan Request
	results  chan Result
	widthReq chan widthChange

	factorizer *Factorizer
}

type widthChange struct {
	width int
	done  chan error
}

// NewPipeline builds a Pipeline with capacity-256 request/result channels.
func NewPipeline(factorizer *Factorizer) *Pipeline {
	return &Pipeline{
		requests:   make(chan Request, BufferSize),
		results:    make(chan Result, BufferSize),
		widthReq:   make(chan widthChange),
		factorizer: factorizer,
	}
}

// Submit enqueues a request, blocking if the pipeline is at capacity (the
// channel-send equivalent of acquiring the free-slots semaphore) or until
// ctx is done.
func (p *Pipeline) Submit(ctx context.Context, req Request) error {
	select {
	case p.requests <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results returns the channel of completed results for the caller to drain.
func (p *Pipeline) Results() <-chan Result { return p.results }

// SyncWidth changes the process-wide decimal width through a synchronous
// barrier: the call blocks until the worker goroutine running Run has
// acknowledged the change, so no in-flight request straddles the rescale.
func (p *Pipeline) SyncWidth(ctx context.Context, width int) error {
	done := make(chan error, 1)
	select {
	case p.widthReq <- widthChange{width: width, done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drains requests, computes results, and enqueues them until ctx is
// cancelled. It is meant to run in its own goroutine, standing in for the
// original's RequestObserver/Worker/ResultObserver trio collapsed into one
// loop (a single worker goroutine needs no separate observer threads once
// the transport itself is a blocking channel rather than a polled
// semaphore).
func (p *Pipeline) Run(ctx context.Context) {
	ticker := time.NewTicker(requestPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case wc := <-p.widthReq:
			_, err := SetWidth(wc.width)
			wc.done <- err
		case req := <-p.requests:
			res := p.execute(ctx, req)
			select {
			case p.results <- res:
			case <-ctx.Done():
				return
			}
		case <-ticker.C:
			// Mirrors the original's tryAcquire timeout: nothing to do but
			// give the ctx.Done() check above another chance to fire.
		}
	}
}

func (p *Pipeline) execute(ctx context.Context, req Request) Result {
	if req.Operation == OpFactor {
		return p.executeFactor(ctx, req)
	}
	x, y := req.Operands[0], req.Operands[1]
	result, exact, err := Apply(req.Operation, x, y)
	return Result{
		ID:        req.ID,
		Error:     errorCodeFor(err),
		Operation: req.Operation,
		ExactSqrt: exact,
		Result:    []Decimal{result},
	}
}

func (p *Pipeline) executeFactor(ctx context.Context, req Request) Result {
	factorCtx := ctx
	if req.ctx != nil {
		factorCtx = req.ctx
	}
	x := req.Operands[0]
	if !x.IsInteger() {
		return Result{ID: req.ID, Error: ErrCodeUnknownOp, Operation: OpFactor}
	}
	factors, err := p.factorizer.Factor(factorCtx, x.Integer)
	if err != nil {
		// A cancelled factorization is not a computation error: the caller
		// observed the cancellation directly and any partial factors found
		// so far are still reported, per SPEC_FULL.md §7.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result{ID: req.ID, Operation: OpFactor, Result: flattenFactors(factors)}
		}
		return Result{ID: req.ID, Error: ErrCodeUnknownOp, Operation: OpFactor, Result: flattenFactors(factors)}
	}
	return Result{ID: req.ID, Operation: OpFactor, Result: flattenFactors(factors)}
}

// flattenFactors packs a factorization into the wire's flat
// [prime, power, prime, power, ...] Decimal sequence.
func flattenFactors(pps []PrimePower) []Decimal {
	out := make([]Decimal, 0, len(pps)*2)
	for _, pp := range pps {
		out = append(out, NewDecimalFromParts(pp.Prime, ZeroU128))
		out = append(out, NewDecimalFromParts(U128FromUint64(uint64(pp.Exponent)), ZeroU128))
	}
	return out
}
