package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farmstand/recordkit/pkg/reconcile"
)

func TestReconciler_Reconcile(t *testing.T) {
	t.Parallel()

	t.Run("within tolerance is consistent and unchanged", func(t *testing.T) {
		t.Parallel()
		r := reconcile.New(reconcile.WithField("subtotal"))

		res := r.Reconcile(21.98, 21.98)
		assert.Equal(t, reconcile.Consistent, res.State)
		assert.Equal(t, 21.98, res.Value())

		res = r.Reconcile(21.985, 21.98)
		assert.Equal(t, reconcile.Consistent, res.State)
		assert.Equal(t, 21.985, res.Value())
	})

	t.Run("drift within ceiling is corrected to computed", func(t *testing.T) {
		t.Parallel()
		r := reconcile.New(reconcile.WithCeiling(1.00))

		res := r.Reconcile(22.50, 21.98)
		assert.Equal(t, reconcile.Corrected, res.State)
		assert.Equal(t, 21.98, res.Value())
		assert.InDelta(t, 0.52, res.Delta, 1e-9)
	})

	t.Run("drift past ceiling is flagged and stored value kept", func(t *testing.T) {
		t.Parallel()
		r := reconcile.New(reconcile.WithCeiling(1.00))

		res := r.Reconcile(50.00, 21.98)
		assert.Equal(t, reconcile.Flagged, res.State)
		assert.Equal(t, 50.00, res.Value())
		assert.InDelta(t, 28.02, res.Delta, 1e-9)
	})

	t.Run("no ceiling corrects any drift", func(t *testing.T) {
		t.Parallel()
		r := reconcile.New()

		res := r.Reconcile(50.00, 21.98)
		assert.Equal(t, reconcile.Corrected, res.State)
		assert.Equal(t, 21.98, res.Value())
	})

	t.Run("corrections disabled flags everything past tolerance", func(t *testing.T) {
		t.Parallel()
		r := reconcile.New(reconcile.WithoutCorrection())

		res := r.Reconcile(22.00, 21.98)
		assert.Equal(t, reconcile.Flagged, res.State)
		assert.Equal(t, 22.00, res.Value())
	})

	t.Run("custom tolerance", func(t *testing.T) {
		t.Parallel()
		r := reconcile.New(reconcile.WithTolerance(0.05))

		res := r.Reconcile(22.00, 21.98)
		assert.Equal(t, reconcile.Consistent, res.State)
	})

	t.Run("boundary deltas", func(t *testing.T) {
		t.Parallel()
		r := reconcile.New(reconcile.WithCeiling(1.00))

		// exactly at tolerance stays consistent
		res := r.Reconcile(22.00, 21.99)
		assert.Equal(t, reconcile.Consistent, res.State)

		// exactly at ceiling still corrects
		res = r.Reconcile(22.98, 21.98)
		assert.Equal(t, reconcile.Corrected, res.State)
	})

	t.Run("sign of drift does not matter", func(t *testing.T) {
		t.Parallel()
		r := reconcile.New()

		res := r.Reconcile(21.00, 21.98)
		assert.Equal(t, reconcile.Corrected, res.State)
		assert.InDelta(t, 0.98, res.Delta, 1e-9)
	})
}
