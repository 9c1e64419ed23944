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
	"github.com/farmstand/recordkit/pkg/schema"
)

var testCategories = map[string]string{
	"cat-veg":   "Vegetables",
	"cat-dairy": "Dairy & Eggs",
}

func productRecord(overrides map[string]any) rawrecord.Record {
	base := map[string]any{
		"id":                     "prod-1",
		"name":                   "Heirloom Tomatoes",
		"description":            nil,
		"price":                  4.50,
		"stock_quantity":         5,
		"category_id":            "cat-veg",
		"category_name":          "Vegetables",
		"image_url":              nil,
		"is_pre_order":           nil,
		"min_pre_order_quantity": nil,
		"max_pre_order_quantity": nil,
	}
	for k, v := range overrides {
		base[k] = v
	}
	return rawrecord.MustFromMap(base)
}

func TestProductPipeline(t *testing.T) {
	t.Parallel()

	t.Run("null pre-order columns accept and default after validation", func(t *testing.T) {
		t.Parallel()
		m := monitor.New()
		proc, err := commerce.NewProductProcessor(m, testCategories)
		require.NoError(t, err)

		res, err := proc.Process(context.Background(), "products.load", []rawrecord.Record{
			productRecord(nil),
		})
		require.NoError(t, err)
		require.Len(t, res.Accepted, 1)

		p := res.Accepted[0]
		assert.False(t, p.PreOrder.Enabled)
		assert.Equal(t, 1, p.PreOrder.MinQuantity)
		assert.Equal(t, 5, p.PreOrder.MaxQuantity) // bounded by stock
		assert.Equal(t, uint64(1), m.Snapshot("products.load").Accepted)
	})

	t.Run("pre-order enabled with explicit bounds", func(t *testing.T) {
		t.Parallel()
		proc, err := commerce.NewProductProcessor(monitor.New(), testCategories)
		require.NoError(t, err)

		res, err := proc.Process(context.Background(), "products.load", []rawrecord.Record{
			productRecord(map[string]any{
				"is_pre_order":           true,
				"min_pre_order_quantity": 2,
				"max_pre_order_quantity": 10,
			}),
		})
		require.NoError(t, err)
		require.Len(t, res.Accepted, 1)
		assert.True(t, res.Accepted[0].PreOrder.Enabled)
		assert.Equal(t, 2, res.Accepted[0].PreOrder.MinQuantity)
		assert.Equal(t, 10, res.Accepted[0].PreOrder.MaxQuantity)
	})

	t.Run("incoherent pre-order bounds reject as business rule", func(t *testing.T) {
		t.Parallel()
		m := monitor.New()
		proc, err := commerce.NewProductProcessor(m, testCategories)
		require.NoError(t, err)

		res, err := proc.Process(context.Background(), "products.load", []rawrecord.Record{
			productRecord(map[string]any{
				"is_pre_order":           true,
				"min_pre_order_quantity": 10,
				"max_pre_order_quantity": 2,
			}),
		})
		require.NoError(t, err)
		require.Len(t, res.Failures, 1)
		assert.Equal(t, pipeline.ClassBusinessRule, res.Failures[0].Class)
		assert.Equal(t, "max_pre_order_quantity", res.Failures[0].FieldPath)
		assert.Equal(t, uint64(1), m.Snapshot("products.load").CriticalRejections)
	})

	t.Run("diverged category name rejects", func(t *testing.T) {
		t.Parallel()
		proc, err := commerce.NewProductProcessor(monitor.New(), testCategories)
		require.NoError(t, err)

		res, err := proc.Process(context.Background(), "products.load", []rawrecord.Record{
			productRecord(map[string]any{"category_name": "Fruit"}),
		})
		require.NoError(t, err)
		require.Len(t, res.Failures, 1)
		assert.Equal(t, "category_name", res.Failures[0].FieldPath)
	})

	t.Run("missing derived category is filled from source of truth", func(t *testing.T) {
		t.Parallel()
		proc, err := commerce.NewProductProcessor(monitor.New(), testCategories)
		require.NoError(t, err)

		res, err := proc.Process(context.Background(), "products.load", []rawrecord.Record{
			productRecord(map[string]any{"category_name": nil}),
		})
		require.NoError(t, err)
		require.Len(t, res.Accepted, 1)
		assert.Equal(t, "Vegetables", res.Accepted[0].Category)
	})

	t.Run("one bad product among many", func(t *testing.T) {
		t.Parallel()
		proc, err := commerce.NewProductProcessor(monitor.New(), testCategories)
		require.NoError(t, err)

		res, err := proc.Process(context.Background(), "products.load", []rawrecord.Record{
			productRecord(map[string]any{"id": "prod-1"}),
			productRecord(map[string]any{"id": "prod-2", "price": "free"}),
			productRecord(map[string]any{"id": "prod-3"}),
		})
		require.NoError(t, err)
		assert.Len(t, res.Accepted, 2)
		require.Len(t, res.Failures, 1)
		assert.Equal(t, "prod-2", res.Failures[0].Key)
		assert.Equal(t, "price", res.Failures[0].FieldPath)
		assert.Equal(t, schema.ClassTypeMismatch, res.Failures[0].Class)
	})
}
