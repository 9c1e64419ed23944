package commerce

import (
	"fmt"
	"time"

	"github.com/farmstand/recordkit/pkg/monitor"
	"github.com/farmstand/recordkit/pkg/pipeline"
	"github.com/farmstand/recordkit/pkg/schema"
)

// PreOrder is a product's pre-order policy after defaults are resolved.
type PreOrder struct {
	Enabled     bool
	MinQuantity int
	MaxQuantity int
}

// Product is the validated catalog entry. Category is derived from
// CategoryID by the store and must agree with the category source of
// truth; CategoryAgreement enforces that.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         float64
	Unit          string
	StockQuantity int
	CategoryID    string
	Category      string
	ImageURL      string
	PreOrder      PreOrder
	CreatedAt     time.Time
}

// ProductSchema mirrors the products table. The three pre-order columns
// are nullable because the store leaves them null for ordinary products;
// declaring them optional was the historical source of spurious
// rejections.
var ProductSchema = schema.Must("products",
	schema.String("id").Length(1, 64),
	schema.String("name").Length(1, 200),
	schema.String("description").Nullable(),
	schema.Number("price").Range(0.01, 100000),
	schema.Enum("unit", "each", "lb", "bunch", "dozen", "pint").Optional(),
	schema.Int("stock_quantity").Range(0, 1_000_000).As("stockQuantity"),
	schema.String("category_id").As("categoryID"),
	schema.String("category_name").Nullable().As("categoryName"),
	schema.URL("image_url").Nullable().As("imageURL"),
	schema.Bool("is_pre_order").Nullable().As("preOrder"),
	schema.Int("min_pre_order_quantity").Nullable().As("preOrderMin"),
	schema.Int("max_pre_order_quantity").Nullable().As("preOrderMax"),
	schema.Time("created_at").Optional().As("createdAt"),
)

// TransformProduct builds a Product from a validated record. Defaults are
// resolved here, after validation: pre-order off, minimum one unit,
// maximum bounded by stock.
func TransformProduct(v schema.Validated) (Product, error) {
	id, ok := v.String("id")
	if !ok {
		return Product{}, fmt.Errorf("products transform: id missing from validated record")
	}
	name, _ := v.String("name")
	price, _ := v.Number("price")
	stock, _ := v.Int("stockQuantity")
	categoryID, _ := v.String("categoryID")

	p := Product{
		ID:            id,
		Name:          name,
		Description:   v.StringOr("description", ""),
		Price:         price,
		Unit:          v.StringOr("unit", "each"),
		StockQuantity: stock,
		CategoryID:    categoryID,
		Category:      v.StringOr("categoryName", ""),
		ImageURL:      v.StringOr("imageURL", ""),
		PreOrder: PreOrder{
			Enabled:     v.BoolOr("preOrder", false),
			MinQuantity: v.IntOr("preOrderMin", 1),
			MaxQuantity: v.IntOr("preOrderMax", stock),
		},
	}
	if ts, ok := v.Time("createdAt"); ok {
		p.CreatedAt = ts
	}
	return p, nil
}

// PreOrderCoherence rejects products whose resolved pre-order bounds make
// no sense together. Shape is already guaranteed; this is pure legality.
func PreOrderCoherence(p Product) (Product, *pipeline.Violation) {
	if !p.PreOrder.Enabled {
		return p, nil
	}
	if p.PreOrder.MinQuantity < 1 {
		return p, &pipeline.Violation{
			Field:  "min_pre_order_quantity",
			Reason: fmt.Sprintf("pre-order minimum %d below 1", p.PreOrder.MinQuantity),
		}
	}
	if p.PreOrder.MaxQuantity < p.PreOrder.MinQuantity {
		return p, &pipeline.Violation{
			Field:  "max_pre_order_quantity",
			Reason: fmt.Sprintf("pre-order maximum %d below minimum %d", p.PreOrder.MaxQuantity, p.PreOrder.MinQuantity),
		}
	}
	return p, nil
}

// CategoryAgreement builds a rule that rejects products whose derived
// category name diverged from the category source of truth. Divergence
// means the denormalized column is stale, which must not pass silently.
func CategoryAgreement(categories map[string]string) pipeline.Rule[Product] {
	return func(p Product) (Product, *pipeline.Violation) {
		want, known := categories[p.CategoryID]
		if !known {
			return p, &pipeline.Violation{
				Field:  "category_id",
				Reason: fmt.Sprintf("unknown category %q", p.CategoryID),
			}
		}
		if p.Category != "" && p.Category != want {
			return p, &pipeline.Violation{
				Field:  "category_name",
				Reason: fmt.Sprintf("derived category %q diverged from %q", p.Category, want),
			}
		}
		// Absent derived name is filled from the source of truth.
		if p.Category == "" {
			p.Category = want
		}
		return p, nil
	}
}

// NewProductProcessor assembles the catalog pipeline: structural schema,
// single-pass transform, pre-order coherence, and category agreement when
// a category source of truth is supplied.
func NewProductProcessor(m *monitor.Monitor, categories map[string]string, opts ...pipeline.Option[Product]) (*pipeline.Processor[Product], error) {
	rules := []pipeline.Rule[Product]{PreOrderCoherence}
	if categories != nil {
		rules = append(rules, CategoryAgreement(categories))
	}
	base := []pipeline.Option[Product]{
		pipeline.WithKeyField[Product]("id"),
		pipeline.WithRules(rules...),
		pipeline.WithMonitor[Product](m),
	}
	return pipeline.New(ProductSchema, TransformProduct, append(base, opts...)...)
}
