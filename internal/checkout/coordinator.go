package checkout

import (
	"fmt"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/google/uuid"
)

// PaymentConfirmation is the simulated payment acknowledgement of a successful checkout.
const PaymentConfirmation = "payment processed successfully"

// Cart is the part of the cart store the coordinator needs.
type Cart interface {
	Summary() domain.CartSummary
	Clear()
}

// Formatter turns a receipt snapshot into a document. Its failures are reported
// on the Result and never stop the cart from being cleared.
type Formatter interface {
	Format(receipt domain.Receipt) error
}

type FormatterFunc func(receipt domain.Receipt) error

func (f FormatterFunc) Format(receipt domain.Receipt) error {
	return f(receipt)
}

type Result struct {
	Receipt      domain.Receipt
	FormatErr    error
	Confirmation string
}

type Option func(*Coordinator)

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(c *Coordinator) { c.newID = newID }
}

// WithTransitionHook registers fn to observe every state machine step.
func WithTransitionHook(fn func(from, to domain.CheckoutStatus)) Option {
	return func(c *Coordinator) { c.onTransition = fn }
}

type Coordinator struct {
	cart      Cart
	formatter Formatter
	now       func() time.Time
	newID     func() string
	status    domain.CheckoutStatus

	onTransition func(from, to domain.CheckoutStatus)
}

func NewCoordinator(cart Cart, formatter Formatter, opts ...Option) *Coordinator {
	c := &Coordinator{
		cart:      cart,
		formatter: formatter,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		status:    domain.CheckoutStatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) Status() domain.CheckoutStatus {
	return c.status
}

// Checkout snapshots the cart, hands the snapshot to the formatter and then
// clears the cart. An empty cart is rejected with ErrEmptyCart and nothing changes.
func (c *Coordinator) Checkout() (*Result, error) {
	if !c.status.CanTransitionTo(domain.CheckoutStatusValidating) {
		return nil, fmt.Errorf("%w: checkout started while %s", ErrIllegalTransition, c.status)
	}
	c.moveTo(domain.CheckoutStatusValidating)

	summary := c.cart.Summary()
	if summary.IsEmpty() {
		c.moveTo(domain.CheckoutStatusRejected)
		c.moveTo(domain.CheckoutStatusIdle)
		return nil, ErrEmptyCart
	}

	c.moveTo(domain.CheckoutStatusSnapshotting)
	receipt := domain.NewReceipt(c.newID(), summary, c.now())
	formatErr := c.format(receipt)

	c.moveTo(domain.CheckoutStatusClearing)
	c.cart.Clear()
	c.moveTo(domain.CheckoutStatusIdle)

	return &Result{
		Receipt:      receipt,
		FormatErr:    formatErr,
		Confirmation: PaymentConfirmation,
	}, nil
}

func (c *Coordinator) moveTo(next domain.CheckoutStatus) {
	prev := c.status
	c.status = next
	if c.onTransition != nil {
		c.onTransition(prev, next)
	}
}

func (c *Coordinator) format(receipt domain.Receipt) (err error) {
	if c.formatter == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("receipt formatter panicked: %v", r)
		}
	}()
	return c.formatter.Format(receipt)
}
