package commerce_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmstand/recordkit/pkg/commerce"
	"github.com/farmstand/recordkit/pkg/monitor"
	"github.com/farmstand/recordkit/pkg/pipeline"
	"github.com/farmstand/recordkit/pkg/rawrecord"
)

func paymentRecord(overrides map[string]any) rawrecord.Record {
	base := map[string]any{
		"id":              "pay-1",
		"order_id":        "ord-1",
		"amount":          21.98,
		"method":          "card",
		"status":          "pending",
		"previous_status": nil,
		"processed_at":    nil,
	}
	for k, v := range overrides {
		base[k] = v
	}
	return rawrecord.MustFromMap(base)
}

func TestPaymentPipeline(t *testing.T) {
	t.Parallel()

	t.Run("pending payment with null processing fields accepts", func(t *testing.T) {
		t.Parallel()
		proc, err := commerce.NewPaymentProcessor(monitor.New())
		require.NoError(t, err)

		res, err := proc.Process(context.Background(), "payments.load", []rawrecord.Record{
			paymentRecord(nil),
		})
		require.NoError(t, err)
		require.Len(t, res.Accepted, 1)
		assert.Equal(t, commerce.PaymentPending, res.Accepted[0].Status)
		assert.True(t, res.Accepted[0].ProcessedAt.IsZero())
	})

	t.Run("captured without timestamp rejects", func(t *testing.T) {
		t.Parallel()
		proc, err := commerce.NewPaymentProcessor(monitor.New())
		require.NoError(t, err)

		res, err := proc.Process(context.Background(), "payments.load", []rawrecord.Record{
			paymentRecord(map[string]any{"previous_status": "authorized", "status": "captured"}),
		})
		require.NoError(t, err)
		require.Len(t, res.Failures, 1)
		assert.Equal(t, "processed_at", res.Failures[0].FieldPath)
		assert.Equal(t, pipeline.ClassBusinessRule, res.Failures[0].Class)
	})

	t.Run("captured with timestamp accepts", func(t *testing.T) {
		t.Parallel()
		proc, err := commerce.NewPaymentProcessor(monitor.New())
		require.NoError(t, err)

		res, err := proc.Process(context.Background(), "payments.load", []rawrecord.Record{
			paymentRecord(map[string]any{
				"previous_status": "authorized",
				"status":          "captured",
				"processed_at":    "2024-06-01T12:05:00Z",
			}),
		})
		require.NoError(t, err)
		assert.Len(t, res.Accepted, 1)
	})

	t.Run("illegal status transition rejects", func(t *testing.T) {
		t.Parallel()
		proc, err := commerce.NewPaymentProcessor(monitor.New())
		require.NoError(t, err)

		res, err := proc.Process(context.Background(), "payments.load", []rawrecord.Record{
			paymentRecord(map[string]any{"previous_status": "refunded", "status": "pending"}),
		})
		require.NoError(t, err)
		require.Len(t, res.Failures, 1)
		assert.Contains(t, res.Failures[0].Reason, "illegal transition")
	})

	t.Run("unknown payment method is structural", func(t *testing.T) {
		t.Parallel()
		m := monitor.New()
		proc, err := commerce.NewPaymentProcessor(m)
		require.NoError(t, err)

		res, err := proc.Process(context.Background(), "payments.load", []rawrecord.Record{
			paymentRecord(map[string]any{"method": "barter"}),
		})
		require.NoError(t, err)
		require.Len(t, res.Failures, 1)
		assert.False(t, res.Failures[0].Critical)
		assert.Zero(t, m.Snapshot("payments.load").CriticalRejections)
	})
}
