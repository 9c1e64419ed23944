package rawrecord_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmstand/recordkit/pkg/rawrecord"
)

func TestFromMap(t *testing.T) {
	t.Parallel()

	t.Run("classifies the common decoded types", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		rec, err := rawrecord.FromMap(map[string]any{
			"name":       "Heirloom Tomatoes",
			"price":      4.50,
			"stock":      int64(12),
			"active":     true,
			"deleted_at": nil,
			"created_at": now,
		})
		require.NoError(t, err)

		s, ok := rec.Get("name").StringVal()
		require.True(t, ok)
		assert.Equal(t, "Heirloom Tomatoes", s)

		f, ok := rec.Get("price").NumberVal()
		require.True(t, ok)
		assert.Equal(t, 4.50, f)

		f, ok = rec.Get("stock").NumberVal()
		require.True(t, ok)
		assert.Equal(t, 12.0, f)

		b, ok := rec.Get("active").BoolVal()
		require.True(t, ok)
		assert.True(t, b)

		assert.True(t, rec.Get("deleted_at").IsNull())
		assert.False(t, rec.Get("deleted_at").IsAbsent())

		ts, ok := rec.Get("created_at").TimeVal()
		require.True(t, ok)
		assert.Equal(t, now, ts)
	})

	t.Run("parses json.Number", func(t *testing.T) {
		t.Parallel()
		rec, err := rawrecord.FromMap(map[string]any{"qty": json.Number("7")})
		require.NoError(t, err)
		f, ok := rec.Get("qty").NumberVal()
		require.True(t, ok)
		assert.Equal(t, 7.0, f)
	})

	t.Run("rejects malformed json.Number", func(t *testing.T) {
		t.Parallel()
		_, err := rawrecord.FromMap(map[string]any{"qty": json.Number("7x")})
		require.Error(t, err)
		assert.ErrorIs(t, err, rawrecord.ErrMalformedNumber)
	})

	t.Run("rejects types outside the closed set", func(t *testing.T) {
		t.Parallel()
		_, err := rawrecord.FromMap(map[string]any{"tags": []string{"a"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, rawrecord.ErrUnsupportedType)
		assert.Contains(t, err.Error(), "tags")
	})
}

func TestRecord_Get(t *testing.T) {
	t.Parallel()

	t.Run("missing field is absent, not null", func(t *testing.T) {
		t.Parallel()
		rec := rawrecord.MustFromMap(map[string]any{"a": 1})

		v := rec.Get("b")
		assert.True(t, v.IsAbsent())
		assert.False(t, v.IsNull())
		assert.True(t, v.IsMissing())
		assert.False(t, rec.Has("b"))
	})

	t.Run("explicit null is present", func(t *testing.T) {
		t.Parallel()
		rec := rawrecord.MustFromMap(map[string]any{"a": nil})

		assert.True(t, rec.Has("a"))
		assert.True(t, rec.Get("a").IsNull())
		assert.False(t, rec.Get("a").IsAbsent())
	})
}

func TestValue_Accessors(t *testing.T) {
	t.Parallel()

	t.Run("wrong-kind access reports false", func(t *testing.T) {
		t.Parallel()
		v := rawrecord.String("hello")
		_, ok := v.NumberVal()
		assert.False(t, ok)
		_, ok = v.BoolVal()
		assert.False(t, ok)
	})

	t.Run("zero value is absent", func(t *testing.T) {
		t.Parallel()
		var v rawrecord.Value
		assert.Equal(t, rawrecord.KindAbsent, v.Kind())
		assert.Nil(t, v.Interface())
	})

	t.Run("interface round-trips payloads", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "x", rawrecord.String("x").Interface())
		assert.Equal(t, 2.5, rawrecord.Number(2.5).Interface())
		assert.Equal(t, true, rawrecord.Bool(true).Interface())
	})
}
