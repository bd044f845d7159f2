// Package payment holds the payment processors the funding ledger can
// capture contributions through. Real gateways stay outside this repository;
// the processors here are deterministic stand-ins for local runs and tests.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	id "medhope/pkg/domain"
)

// Mode selects a processor from configuration.
type Mode string

const (
	ModeSandbox Mode = "sandbox"
	ModeDecline Mode = "decline"
)

// Charge is a request to capture money from a donor for a case.
type Charge struct {
	CaseID  id.CaseID
	DonorID id.UserID
	Amount  decimal.Decimal
	IsZakat bool
}

// Capture is the processor's answer. A declined charge is not an error.
type Capture struct {
	Success       bool
	Reference     string
	DeclineReason string
}

// SandboxProcessor approves every charge and mints a unique reference.
type SandboxProcessor struct {
	Latency time.Duration
	// Limit declines charges above it when positive.
	Limit decimal.Decimal
}

func (p SandboxProcessor) Capture(ctx context.Context, charge Charge) (*Capture, error) {
	if p.Latency > 0 {
		select {
		case <-time.After(p.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.Limit.IsPositive() && charge.Amount.GreaterThan(p.Limit) {
		return &Capture{DeclineReason: fmt.Sprintf("amount exceeds sandbox limit of %s", p.Limit.StringFixed(2))}, nil
	}
	return &Capture{Success: true, Reference: "sbx_" + uuid.NewString()}, nil
}

// DeclineProcessor declines every charge.
type DeclineProcessor struct {
	Reason string
}

func (p DeclineProcessor) Capture(_ context.Context, _ Charge) (*Capture, error) {
	reason := p.Reason
	if reason == "" {
		reason = "payment declined"
	}
	return &Capture{DeclineReason: reason}, nil
}

// Processor captures charges.
type Processor interface {
	Capture(ctx context.Context, charge Charge) (*Capture, error)
}

// New returns the processor for mode. Unknown modes fall back to sandbox.
func New(mode string) Processor {
	switch Mode(mode) {
	case ModeDecline:
		return DeclineProcessor{}
	default:
		return SandboxProcessor{}
	}
}
