package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
	"github.com/neha18-dp/freshbasket-aws-project/internal/notify"
	"github.com/neha18-dp/freshbasket-aws-project/internal/store"
)

// Checkout turns a cart into an order with a reserve-then-commit execution:
// the order is written in a Reserving state, the cart lines are cleared, and
// only then is the order committed to Ordered. A failure after the reserve
// runs the accumulated compensations in reverse, so a half-finished checkout
// never leaves both a live order and a live cart.
//
// Executions are keyed by an idempotency token minted when the cart view is
// rendered; replaying a token returns the recorded execution instead of
// placing a second order.
type Checkout struct {
	store    store.Store
	notifier *notify.Notifier
	logger   *slog.Logger

	mu         sync.RWMutex
	executions map[string]*Execution
}

type Execution struct {
	Token     string
	OrderID   string
	Username  string
	Status    Status
	Steps     []Step
	CreatedAt time.Time
	UpdatedAt time.Time

	compensations []compensation
}

type Status string

const (
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
	StatusCompensated Status = "compensated"
)

type Step struct {
	Name   string
	Status StepStatus
	Err    error
}

type StepStatus string

const (
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

type compensation struct {
	name   string
	action func() error
}

// Result reports one PlaceOrder call. EmptyCart means nothing happened and
// the caller should route back to the cart view.
type Result struct {
	Success   bool
	EmptyCart bool
	Replayed  bool
	Order     model.Order
	Execution *Execution
	Err       error
}

func New(st store.Store, notifier *notify.Notifier, logger *slog.Logger) *Checkout {
	return &Checkout{
		store:      st,
		notifier:   notifier,
		logger:     logger,
		executions: make(map[string]*Execution),
	}
}

// NewToken mints an idempotency token for one checkout attempt.
func (c *Checkout) NewToken() string {
	return uuid.New().String()
}

// PlaceOrder snapshots the user's cart into a new order and clears the cart.
// An empty cart is a no-op, not an error.
func (c *Checkout) PlaceOrder(ctx context.Context, token, username string) *Result {
	c.mu.Lock()
	if prev, ok := c.executions[token]; ok {
		c.mu.Unlock()
		return c.replay(ctx, prev)
	}

	now := time.Now()
	execution := &Execution{
		Token:     token,
		Username:  username,
		Status:    StatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.executions[token] = execution
	c.mu.Unlock()

	order, err := c.run(ctx, execution, username)
	if err != nil {
		return &Result{Execution: execution, Err: err}
	}
	if order.ID == "" {
		// Empty cart. Forget the execution so the same token can be
		// retried once the cart has something in it.
		c.mu.Lock()
		delete(c.executions, token)
		c.mu.Unlock()
		return &Result{EmptyCart: true, Execution: execution}
	}

	c.notifier.OrderPlaced(ctx, username, order.ID)
	return &Result{Success: true, Order: order, Execution: execution}
}

func (c *Checkout) run(ctx context.Context, execution *Execution, username string) (model.Order, error) {
	lines, err := c.store.ListCartLines(ctx, username)
	if err != nil {
		c.fail(execution, "snapshot_cart", err)
		return model.Order{}, err
	}
	if len(lines) == 0 {
		c.complete(execution, "snapshot_cart")
		execution.Status = StatusCompleted
		return model.Order{}, nil
	}

	// Snapshot: copies stamped Ordered with computed totals, detached from
	// the cart rows they came from.
	items := make([]model.CartLine, 0, len(lines))
	for _, line := range lines {
		line.Status = model.LineStatusOrdered
		line.TotalPrice = line.Price * line.Qty
		items = append(items, line)
	}
	c.complete(execution, "snapshot_cart")

	order := model.Order{
		ID:        uuid.New().String(),
		Username:  username,
		Items:     items,
		Status:    model.OrderStatusReserving,
		CreatedAt: time.Now(),
	}
	if err := c.store.PutOrder(ctx, order); err != nil {
		c.fail(execution, "reserve_order", err)
		return model.Order{}, err
	}
	execution.OrderID = order.ID
	c.complete(execution, "reserve_order")

	execution.compensations = append(execution.compensations, compensation{
		name: "cancel_reservation",
		action: func() error {
			return c.store.DeleteOrder(context.WithoutCancel(ctx), order.ID)
		},
	})

	cleared := []model.CartLine{}
	for _, line := range lines {
		if err := c.store.DeleteCartLine(ctx, line.Username, line.ProductID); err != nil {
			c.fail(execution, "clear_cart", err)
			c.restoreLines(ctx, cleared)
			c.compensate(execution)
			return model.Order{}, err
		}
		cleared = append(cleared, line)
	}
	c.complete(execution, "clear_cart")

	execution.compensations = append(execution.compensations, compensation{
		name: "restore_cart",
		action: func() error {
			c.restoreLines(context.WithoutCancel(ctx), cleared)
			return nil
		},
	})

	order.Status = model.OrderStatusOrdered
	if err := c.store.PutOrder(ctx, order); err != nil {
		c.fail(execution, "commit_order", err)
		c.compensate(execution)
		return model.Order{}, err
	}
	c.complete(execution, "commit_order")

	execution.Status = StatusCompleted
	c.touch(execution)
	return order, nil
}

// replay answers a duplicate submission of an already-seen token.
func (c *Checkout) replay(ctx context.Context, execution *Execution) *Result {
	if execution.Status != StatusCompleted || execution.OrderID == "" {
		return &Result{Replayed: true, Execution: execution, Err: fmt.Errorf("checkout %s did not complete", execution.Token)}
	}
	order, err := c.store.GetOrder(ctx, execution.OrderID)
	if err != nil {
		return &Result{Replayed: true, Execution: execution, Err: err}
	}
	return &Result{Success: true, Replayed: true, Order: order, Execution: execution}
}

// ListOrders scans all orders and filters by username. Reserving orders are
// in-flight reservations and stay hidden.
func (c *Checkout) ListOrders(ctx context.Context, username string) ([]model.Order, error) {
	orders, err := c.store.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	res := []model.Order{}
	for _, o := range orders {
		if o.Username == username && o.Status == model.OrderStatusOrdered {
			res = append(res, o)
		}
	}
	return res, nil
}

// ListAllOrders is the unfiltered scan used by the admin dashboard.
func (c *Checkout) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	return c.store.ListOrders(ctx)
}

// GetExecution returns the recorded execution for a token.
func (c *Checkout) GetExecution(token string) (*Execution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	execution, ok := c.executions[token]
	return execution, ok
}

func (c *Checkout) compensate(execution *Execution) {
	execution.Status = StatusCompensated
	c.touch(execution)

	for i := len(execution.compensations) - 1; i >= 0; i-- {
		comp := execution.compensations[i]
		if err := comp.action(); err != nil {
			c.logger.Warn("checkout compensation failed", "step", comp.name, "order_id", execution.OrderID, "error", err)
		}
	}
}

func (c *Checkout) restoreLines(ctx context.Context, lines []model.CartLine) {
	for _, line := range lines {
		if err := c.store.PutCartLine(ctx, line); err != nil {
			c.logger.Warn("cart restore failed", "username", line.Username, "product_id", line.ProductID, "error", err)
		}
	}
}

func (c *Checkout) complete(execution *Execution, name string) {
	execution.Steps = append(execution.Steps, Step{Name: name, Status: StepStatusCompleted})
	c.touch(execution)
}

func (c *Checkout) fail(execution *Execution, name string, err error) {
	execution.Steps = append(execution.Steps, Step{Name: name, Status: StepStatusFailed, Err: err})
	execution.Status = StatusFailed
	c.touch(execution)
}

func (c *Checkout) touch(execution *Execution) {
	execution.UpdatedAt = time.Now()
}
