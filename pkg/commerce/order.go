package commerce

import (
	"fmt"
	"slices"
	"time"

	"github.com/farmstand/recordkit/pkg/monitor"
	"github.com/farmstand/recordkit/pkg/pipeline"
	"github.com/farmstand/recordkit/pkg/reconcile"
	"github.com/farmstand/recordkit/pkg/schema"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// orderSuccessors is the legal-successor table for order statuses.
// Cancellation is allowed until the order is ready for pickup.
var orderSuccessors = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderCompleted},
	OrderCompleted: {},
	OrderCancelled: {},
}

// CanTransition reports whether to is a legal successor of s.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	return slices.Contains(orderSuccessors[s], to)
}

// OrderItem is one validated order line, fetched from its own table.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// Order is the validated order header. Items are attached by the caller
// after both tables have been processed; raw records are flat, so the
// header and its lines travel as separate record shapes.
type Order struct {
	ID             string
	CustomerID     string
	Status         OrderStatus
	PreviousStatus OrderStatus // empty for a freshly created order
	Items          []OrderItem
	Subtotal       float64
	Tax            float64
	DeliveryFee    float64
	Total          float64
	CreatedAt      time.Time
}

// WithItems returns a copy of the order carrying its lines, ready for
// subtotal reconciliation.
func (o Order) WithItems(items []OrderItem) Order {
	o.Items = items
	return o
}

// OrderSchema mirrors the orders table. previous_status is null for new
// orders, so it is nullable, not optional.
var OrderSchema = schema.Must("orders",
	schema.String("id").Length(1, 64),
	schema.String("customer_id").As("customerID"),
	schema.Enum("status", "pending", "confirmed", "preparing", "ready", "completed", "cancelled"),
	schema.Enum("previous_status", "pending", "confirmed", "preparing", "ready", "completed", "cancelled").
		Nullable().As("previousStatus"),
	schema.Number("subtotal").Range(0, 1_000_000),
	schema.Number("tax").Range(0, 100000).Nullable(),
	schema.Number("delivery_fee").Range(0, 10000).Nullable().As("deliveryFee"),
	schema.Number("total").Range(0, 1_000_000),
	schema.Time("created_at").As("createdAt"),
)

// OrderItemSchema mirrors the order_items table.
var OrderItemSchema = schema.Must("order_items",
	schema.String("id").Length(1, 64),
	schema.String("order_id").As("orderID"),
	schema.String("product_id").As("productID"),
	schema.String("product_name").Length(1, 200).As("name"),
	schema.Number("price").Range(0.01, 100000),
	schema.Int("quantity").Range(1, 10000),
)

// TransformOrder builds an Order header. Null tax and delivery fee mean
// the store has not priced them yet and default to zero after validation.
func TransformOrder(v schema.Validated) (Order, error) {
	id, ok := v.String("id")
	if !ok {
		return Order{}, fmt.Errorf("orders transform: id missing from validated record")
	}
	status, _ := v.String("status")
	subtotal, _ := v.Number("subtotal")
	total, _ := v.Number("total")
	created, _ := v.Time("createdAt")

	return Order{
		ID:             id,
		CustomerID:     v.StringOr("customerID", ""),
		Status:         OrderStatus(status),
		PreviousStatus: OrderStatus(v.StringOr("previousStatus", "")),
		Subtotal:       subtotal,
		Tax:            v.NumberOr("tax", 0),
		DeliveryFee:    v.NumberOr("deliveryFee", 0),
		Total:          total,
		CreatedAt:      created,
	}, nil
}

// TransformOrderItem builds one order line.
func TransformOrderItem(v schema.Validated) (OrderItem, error) {
	id, ok := v.String("id")
	if !ok {
		return OrderItem{}, fmt.Errorf("order_items transform: id missing from validated record")
	}
	price, _ := v.Number("price")
	qty, _ := v.Int("quantity")
	return OrderItem{
		ID:        id,
		OrderID:   v.StringOr("orderID", ""),
		ProductID: v.StringOr("productID", ""),
		Name:      v.StringOr("name", ""),
		Price:     price,
		Quantity:  qty,
	}, nil
}

// StatusLegality rejects orders whose status is not a legal successor of
// the previous one. A fresh order (no previous status) may only be
// pending.
func StatusLegality(o Order) (Order, *pipeline.Violation) {
	if o.PreviousStatus == "" {
		if o.Status != OrderPending {
			return o, &pipeline.Violation{
				Field:  "status",
				Reason: fmt.Sprintf("new order cannot start in %q", o.Status),
			}
		}
		return o, nil
	}
	if o.Status == o.PreviousStatus {
		return o, nil
	}
	if !o.PreviousStatus.CanTransition(o.Status) {
		return o, &pipeline.Violation{
			Field:  "status",
			Reason: fmt.Sprintf("illegal transition %q -> %q", o.PreviousStatus, o.Status),
		}
	}
	return o, nil
}

// SubtotalReconciler checks the stored subtotal against the sum of line
// totals. Orders without attached items are left alone; there is nothing
// to derive from.
func SubtotalReconciler(r *reconcile.Reconciler) pipeline.Reconciler[Order] {
	return func(o Order) (Order, []reconcile.Result) {
		if len(o.Items) == 0 {
			return o, nil
		}
		var computed float64
		for _, item := range o.Items {
			computed += item.Price * float64(item.Quantity)
		}
		res := r.Reconcile(o.Subtotal, computed)
		res.Field = "subtotal"
		o.Subtotal = res.Value()
		return o, []reconcile.Result{res}
	}
}

// TotalReconciler checks the stored grand total against
// subtotal + tax + delivery fee. It runs after SubtotalReconciler so a
// corrected subtotal feeds into the recomputed total.
func TotalReconciler(r *reconcile.Reconciler) pipeline.Reconciler[Order] {
	return func(o Order) (Order, []reconcile.Result) {
		res := r.Reconcile(o.Total, o.Subtotal+o.Tax+o.DeliveryFee)
		res.Field = "total"
		o.Total = res.Value()
		return o, []reconcile.Result{res}
	}
}

// NewOrderProcessor assembles the order-header pipeline. The total
// reconciler works from header fields alone; the subtotal reconciler
// no-ops until items are attached, so processing headers is safe.
func NewOrderProcessor(m *monitor.Monitor, r *reconcile.Reconciler, opts ...pipeline.Option[Order]) (*pipeline.Processor[Order], error) {
	if r == nil {
		r = reconcile.New()
	}
	base := []pipeline.Option[Order]{
		pipeline.WithKeyField[Order]("id"),
		pipeline.WithRules(StatusLegality),
		pipeline.WithReconcilers(SubtotalReconciler(r), TotalReconciler(r)),
		pipeline.WithMonitor[Order](m),
	}
	return pipeline.New(OrderSchema, TransformOrder, append(base, opts...)...)
}

// NewOrderItemProcessor assembles the order-line pipeline.
func NewOrderItemProcessor(m *monitor.Monitor, opts ...pipeline.Option[OrderItem]) (*pipeline.Processor[OrderItem], error) {
	base := []pipeline.Option[OrderItem]{
		pipeline.WithKeyField[OrderItem]("id"),
		pipeline.WithMonitor[OrderItem](m),
	}
	return pipeline.New(OrderItemSchema, TransformOrderItem, append(base, opts...)...)
}

// AssembleOrders joins processed headers with their processed lines and
// reconciles the stored aggregates against the now-available constituents.
// Corrections and flags are recorded under op, so callers should pass a
// dedicated operation name (for example "orders.assemble") to keep the
// assembly tallies apart from the header validation ones.
func AssembleOrders(m *monitor.Monitor, op string, orders []Order, items []OrderItem, r *reconcile.Reconciler) []Order {
	if r == nil {
		r = reconcile.New()
	}
	byOrder := make(map[string][]OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	subtotal := SubtotalReconciler(r)
	total := TotalReconciler(r)

	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		o = o.WithItems(byOrder[o.ID])
		o, subResults := subtotal(o)
		o, totResults := total(o)

		corrected := false
		for _, res := range append(subResults, totResults...) {
			switch res.State {
			case reconcile.Corrected:
				corrected = true
			case reconcile.Flagged:
				if m != nil {
					m.RecordFlagged(op, o.ID, res.Field+": calculation_discrepancy")
				}
			}
		}
		if corrected && m != nil {
			m.RecordCorrected(op)
		}
		out = append(out, o)
	}
	return out
}
