package calculus

import (
	"context"
	"testing"
	"time"
)

func mustParse(t *testing.T, s string) Decimal {
	t.Helper()
	d, err := ParseDecimal(s)
	if err != nil {
		t.Fatalf("ParseDecimal(%q): %v", s, err)
	}
	return d
}

// runRequest drains a single request/result round-trip through a Pipeline
// wired to a background Run goroutine, returning the Result.
func runRequest(t *testing.T, pl *Pipeline, ctx context.Context, req Request) Result {
	t.Helper()
	if err := pl.Submit(ctx, req); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	select {
	case res := <-pl.Results():
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for result")
	}
	return Result{}
}

func TestCalculatorChainedAddition(t *testing.T) {
	pl := NewPipeline(NewFactorizer(testPRNG()))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pl.Run(ctx)

	calc := NewCalculator()

	// "2" Add "3" Mult "4" Equal, chained left to right as the calculator
	// does: (2+3)=5, then 5*4=20.
	req, ok, err := calc.Submit(ctx, mustParse(t, "2"), OpAdd)
	if err != nil || ok {
		t.Fatalf("unexpected latch result: ok=%v err=%v", ok, err)
	}

	req, ok, err = calc.Submit(ctx, mustParse(t, "3"), OpMult)
	if err != nil || !ok {
		t.Fatalf("expected a request for the pending add: ok=%v err=%v", ok, err)
	}
	res := runRequest(t, pl, ctx, req)
	if res.Error != ErrCodeNone {
		t.Fatalf("unexpected error code: %v", res.Error)
	}
	calc.ApplyResult(res)
	if got := res.Result[0].String(); got != "5,000" {
		t.Fatalf("2+3 = %s, want 5,000", got)
	}

	req, ok, err = calc.Submit(ctx, mustParse(t, "4"), OpEqual)
	if err != nil || !ok {
		t.Fatalf("expected a request for the pending mult: ok=%v err=%v", ok, err)
	}
	res = runRequest(t, pl, ctx, req)
	calc.ApplyResult(res)
	if got := res.Result[0].String(); got != "20,000" {
		t.Fatalf("5*4 = %s, want 20,000", got)
	}
}

func TestCalculatorRepeatedEqual(t *testing.T) {
	pl := NewPipeline(NewFactorizer(testPRNG()))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pl.Run(ctx)

	calc := NewCalculator()
	calc.Submit(ctx, mustParse(t, "10"), OpAdd)
	req, _, _ := calc.Submit(ctx, mustParse(t, "5"), OpEqual)
	res := runRequest(t, pl, ctx, req)
	calc.ApplyResult(res)
	if got := res.Result[0].String(); got != "15,000" {
		t.Fatalf("10+5 = %s, want 15,000", got)
	}

	// Pressing "=" again reruns the same operation against the same right
	// operand: 15+5=20.
	req, ok, err := calc.Submit(ctx, Decimal{}, OpEqual)
	if err != nil || !ok {
		t.Fatalf("expected repeated-equal request: ok=%v err=%v", ok, err)
	}
	res = runRequest(t, pl, ctx, req)
	calc.ApplyResult(res)
	if got := res.Result[0].String(); got != "20,000" {
		t.Fatalf("15+5 = %s, want 20,000", got)
	}
}

func TestCalculatorClearCancelsFactor(t *testing.T) {
	calc := NewCalculator()
	ctx := context.Background()
	req, ok, err := calc.Submit(ctx, mustParse(t, "97"), OpFactor)
	if err != nil || !ok {
		t.Fatalf("expected a factor request: ok=%v err=%v", ok, err)
	}
	if req.ctx == nil {
		t.Fatal("expected a derived cancellation context on the factor request")
	}
	calc.Reset()
	select {
	case <-req.ctx.Done():
	default:
		t.Fatal("expected Reset to cancel the in-flight factorization context")
	}
}

func TestCalculatorFactorRejectedWhilePending(t *testing.T) {
	calc := NewCalculator()
	ctx := context.Background()
	calc.Submit(ctx, mustParse(t, "2"), OpAdd)
	_, _, err := calc.Submit(ctx, mustParse(t, "97"), OpFactor)
	if err != ErrFactorPending {
		t.Fatalf("expected ErrFactorPending, got %v", err)
	}
}

func TestApplyDivisionByZero(t *testing.T) {
	_, _, err := Apply(OpDiv, mustParse(t, "1"), mustParse(t, "0"))
	if err != ErrDivideByZero {
		t.Fatalf("expected ErrDivideByZero, got %v", err)
	}
}

func TestApplyUnknownOp(t *testing.T) {
	_, _, err := Apply(Operation(42), mustParse(t, "1"), mustParse(t, "1"))
	if err != ErrUnknownOp {
		t.Fatalf("expected ErrUnknownOp, got %v", err)
	}
}
