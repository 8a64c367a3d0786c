package order

import (
	"errors"
	"fmt"
	"time"

	"willowcommerce/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a customer order in the system. It is the aggregate root
// for the order-action engine: its status is mutated exclusively through the
// action orchestrator's conditional transitions, never deleted (terminal
// states such as CANCELLED are recorded as statuses).
//
// Order follows these invariants:
//   - Identity (tenant ID, order ID) is immutable
//   - Status is never empty
//   - Quantity is positive and total price is not negative
//   - DeliversAt is set only once the order reaches a delivered-equivalent state
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// tenantID scopes the order to the owning tenant
	tenantID string

	// id is the order identifier assigned by the upstream ingestion process
	id int64

	// status is the current state in the order lifecycle
	status Status

	// orderDate is the date the order was placed (day granularity)
	orderDate time.Time

	// deliversAt is the delivery date, nil until the order is delivered
	deliversAt *time.Time

	// quantity is the number of units ordered
	quantity int

	// totalPrice is the order total in the tenant's currency
	totalPrice float64

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Placed status. This is the entry point used
// by ingestion-side tooling and tests; the action engine itself only ever
// rehydrates orders via RestoreOrder.
func NewOrder(tenantID string, id int64, orderDate time.Time, quantity int, totalPrice float64) (*Order, error) {
	o := &Order{
		status:        Placed,
		orderDate:     truncateToDay(orderDate),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setTenantID(tenantID),
		o.setID(id),
		o.setQuantity(quantity),
		o.setTotalPrice(totalPrice),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state, including opaque
// carrier statuses the store may report.
func RestoreOrder(
	tenantID string,
	id int64,
	status Status,
	orderDate time.Time,
	deliversAt *time.Time,
	quantity int,
	totalPrice float64,
) (*Order, error) {
	o := &Order{
		orderDate:     truncateToDay(orderDate),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setTenantID(tenantID),
		o.setID(id),
		o.setStatus(status),
		o.setQuantity(quantity),
		o.setTotalPrice(totalPrice),
	); err != nil {
		return nil, err
	}

	if deliversAt != nil {
		d := truncateToDay(*deliversAt)
		o.deliversAt = &d
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity (tenant ID, order ID).
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.tenantID == other.tenantID && o.id == other.id
}

// TenantID returns the owning tenant's identifier.
func (o *Order) TenantID() string {
	return o.tenantID
}

// ID returns the order identifier.
func (o *Order) ID() int64 {
	return o.id
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// OrderDate returns the date the order was placed, truncated to day granularity.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// DeliversAt returns the delivery date, or nil if the order has not been delivered.
func (o *Order) DeliversAt() *time.Time {
	return o.deliversAt
}

// Quantity returns the number of units ordered.
func (o *Order) Quantity() int {
	return o.quantity
}

// TotalPrice returns the order total.
func (o *Order) TotalPrice() float64 {
	return o.totalPrice
}

// MarkDelivered transitions a shipped order to Delivered and stamps the
// delivery date. The delivery date is set exactly once.
func (o *Order) MarkDelivered(at time.Time) error {
	newStatus, err := o.status.MarkDelivered()
	if err != nil {
		return err
	}

	day := truncateToDay(at)
	o.status = newStatus
	if o.deliversAt == nil {
		o.deliversAt = &day
	}
	return nil
}

// DaysSinceDelivery returns the number of whole calendar days between the
// delivery date and now. The second return value is false when the order has
// no delivery date.
func (o *Order) DaysSinceDelivery(now time.Time) (int, bool) {
	if o.deliversAt == nil {
		return 0, false
	}
	return int(truncateToDay(now).Sub(*o.deliversAt).Hours() / 24), true
}

func (o *Order) setTenantID(tenantID string) error {
	if tenantID == "" {
		return errs.NewValueIsRequiredError("tenantID")
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderID", fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setTotalPrice(totalPrice float64) error {
	if totalPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalPrice", fmt.Errorf("%f is negative", totalPrice))
	}
	o.totalPrice = totalPrice
	return nil
}

// truncateToDay drops the time component, keeping day granularity in UTC.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
