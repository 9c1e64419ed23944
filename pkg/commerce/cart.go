package commerce

import (
	"fmt"

	"github.com/farmstand/recordkit/pkg/monitor"
	"github.com/farmstand/recordkit/pkg/pipeline"
	"github.com/farmstand/recordkit/pkg/reconcile"
	"github.com/farmstand/recordkit/pkg/schema"
)

// CartItem is one validated cart line. LineTotal is a stored aggregate the
// store denormalizes; the reconciler keeps it honest against
// price x quantity.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Name      string
	Price     float64
	Quantity  int
	LineTotal float64
}

// CartItemSchema mirrors the cart_items table.
var CartItemSchema = schema.Must("cart_items",
	schema.String("id").Length(1, 64),
	schema.String("cart_id").As("cartID"),
	schema.String("product_id").As("productID"),
	schema.String("product_name").Length(1, 200).As("name"),
	schema.Number("price").Range(0.01, 100000),
	schema.Int("quantity").Range(1, 10000),
	schema.Number("line_total").Nullable().As("lineTotal"),
)

// TransformCartItem builds a CartItem. A null stored line total defaults
// to the computed one after validation, which the reconciler then treats
// as consistent.
func TransformCartItem(v schema.Validated) (CartItem, error) {
	id, ok := v.String("id")
	if !ok {
		return CartItem{}, fmt.Errorf("cart_items transform: id missing from validated record")
	}
	price, _ := v.Number("price")
	qty, _ := v.Int("quantity")

	return CartItem{
		ID:        id,
		CartID:    v.StringOr("cartID", ""),
		ProductID: v.StringOr("productID", ""),
		Name:      v.StringOr("name", ""),
		Price:     price,
		Quantity:  qty,
		LineTotal: v.NumberOr("lineTotal", price*float64(qty)),
	}, nil
}

// LineTotalReconciler checks the stored line total against
// price x quantity under the given policy.
func LineTotalReconciler(r *reconcile.Reconciler) pipeline.Reconciler[CartItem] {
	return func(item CartItem) (CartItem, []reconcile.Result) {
		res := r.Reconcile(item.LineTotal, item.Price*float64(item.Quantity))
		item.LineTotal = res.Value()
		return item, []reconcile.Result{res}
	}
}

// NewCartProcessor assembles the cart line pipeline. One malformed line
// must not make the whole cart unreadable, which is exactly the resilient
// batch contract.
func NewCartProcessor(m *monitor.Monitor, r *reconcile.Reconciler, opts ...pipeline.Option[CartItem]) (*pipeline.Processor[CartItem], error) {
	if r == nil {
		r = reconcile.New(reconcile.WithField("line_total"))
	}
	base := []pipeline.Option[CartItem]{
		pipeline.WithKeyField[CartItem]("id"),
		pipeline.WithReconcilers(LineTotalReconciler(r)),
		pipeline.WithMonitor[CartItem](m),
	}
	return pipeline.New(CartItemSchema, TransformCartItem, append(base, opts...)...)
}
