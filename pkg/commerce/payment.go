package commerce

import (
	"fmt"
	"slices"
	"time"

	"github.com/farmstand/recordkit/pkg/monitor"
	"github.com/farmstand/recordkit/pkg/pipeline"
	"github.com/farmstand/recordkit/pkg/schema"
)

// PaymentStatus is the payment lifecycle state.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentAuthorized PaymentStatus = "authorized"
	PaymentCaptured   PaymentStatus = "captured"
	PaymentRefunded   PaymentStatus = "refunded"
	PaymentFailed     PaymentStatus = "failed"
)

var paymentSuccessors = map[PaymentStatus][]PaymentStatus{
	PaymentPending:    {PaymentAuthorized, PaymentFailed},
	PaymentAuthorized: {PaymentCaptured, PaymentFailed},
	PaymentCaptured:   {PaymentRefunded},
	PaymentRefunded:   {},
	PaymentFailed:     {},
}

// CanTransition reports whether to is a legal successor of s.
func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	return slices.Contains(paymentSuccessors[s], to)
}

// Payment is the validated payment record for an order. Gateway specifics
// live outside this system; only the stored outcome is modeled.
type Payment struct {
	ID             string
	OrderID        string
	Amount         float64
	Method         string
	Status         PaymentStatus
	PreviousStatus PaymentStatus
	ProcessedAt    time.Time // zero until the payment was processed
}

// PaymentSchema mirrors the payments table. processed_at is null until the
// gateway reports back.
var PaymentSchema = schema.Must("payments",
	schema.String("id").Length(1, 64),
	schema.String("order_id").As("orderID"),
	schema.Number("amount").Range(0.01, 1_000_000),
	schema.Enum("method", "card", "cash", "bank_transfer"),
	schema.Enum("status", "pending", "authorized", "captured", "refunded", "failed"),
	schema.Enum("previous_status", "pending", "authorized", "captured", "refunded", "failed").
		Nullable().As("previousStatus"),
	schema.Time("processed_at").Nullable().As("processedAt"),
)

// TransformPayment builds a Payment from a validated record.
func TransformPayment(v schema.Validated) (Payment, error) {
	id, ok := v.String("id")
	if !ok {
		return Payment{}, fmt.Errorf("payments transform: id missing from validated record")
	}
	amount, _ := v.Number("amount")
	status, _ := v.String("status")

	p := Payment{
		ID:             id,
		OrderID:        v.StringOr("orderID", ""),
		Amount:         amount,
		Method:         v.StringOr("method", ""),
		Status:         PaymentStatus(status),
		PreviousStatus: PaymentStatus(v.StringOr("previousStatus", "")),
	}
	if ts, ok := v.Time("processedAt"); ok {
		p.ProcessedAt = ts
	}
	return p, nil
}

// PaymentStatusLegality rejects payments whose status is not a legal
// successor of the previous one.
func PaymentStatusLegality(p Payment) (Payment, *pipeline.Violation) {
	if p.PreviousStatus == "" || p.Status == p.PreviousStatus {
		return p, nil
	}
	if !p.PreviousStatus.CanTransition(p.Status) {
		return p, &pipeline.Violation{
			Field:  "status",
			Reason: fmt.Sprintf("illegal transition %q -> %q", p.PreviousStatus, p.Status),
		}
	}
	return p, nil
}

// CapturedRequiresTimestamp rejects captured or refunded payments with no
// processing timestamp; the gateway always stamps a settled payment.
func CapturedRequiresTimestamp(p Payment) (Payment, *pipeline.Violation) {
	settled := p.Status == PaymentCaptured || p.Status == PaymentRefunded
	if settled && p.ProcessedAt.IsZero() {
		return p, &pipeline.Violation{
			Field:  "processed_at",
			Reason: fmt.Sprintf("%s payment has no processing timestamp", p.Status),
		}
	}
	return p, nil
}

// NewPaymentProcessor assembles the payment pipeline.
func NewPaymentProcessor(m *monitor.Monitor, opts ...pipeline.Option[Payment]) (*pipeline.Processor[Payment], error) {
	base := []pipeline.Option[Payment]{
		pipeline.WithKeyField[Payment]("id"),
		pipeline.WithRules(PaymentStatusLegality, CapturedRequiresTimestamp),
		pipeline.WithMonitor[Payment](m),
	}
	return pipeline.New(PaymentSchema, TransformPayment, append(base, opts...)...)
}
