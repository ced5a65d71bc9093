package store

import (
	"context"
	"sync"

	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
)

type cartKey struct {
	username  string
	productID string
}

// Memory keeps all five collections in process memory. It is the degenerate
// single-node store: nothing survives a restart and nothing is shared across
// instances.
type Memory struct {
	mu       sync.RWMutex
	users    map[string]model.User
	products map[string]model.Product
	cart     map[cartKey]model.CartLine
	orders   map[string]model.Order
	sellers  map[string]model.Seller
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]model.User),
		products: make(map[string]model.Product),
		cart:     make(map[cartKey]model.CartLine),
		orders:   make(map[string]model.Order),
		sellers:  make(map[string]model.Seller),
	}
}

func (m *Memory) GetUser(_ context.Context, username string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[username]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) PutUser(_ context.Context, u model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users[u.Username] = u
	return nil
}

func (m *Memory) ListUsers(_ context.Context) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		res = append(res, u)
	}
	return res, nil
}

func (m *Memory) GetProduct(_ context.Context, id string) (model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return model.Product{}, ErrNotFound
	}
	return p, nil
}

func (m *Memory) PutProduct(_ context.Context, p model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products[p.ID] = p
	return nil
}

func (m *Memory) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.products, id)
	return nil
}

func (m *Memory) ListProducts(_ context.Context) ([]model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]model.Product, 0, len(m.products))
	for _, p := range m.products {
		res = append(res, p)
	}
	return res, nil
}

func (m *Memory) GetCartLine(_ context.Context, username, productID string) (model.CartLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	line, ok := m.cart[cartKey{username, productID}]
	if !ok {
		return model.CartLine{}, ErrNotFound
	}
	return line, nil
}

func (m *Memory) PutCartLine(_ context.Context, line model.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart[cartKey{line.Username, line.ProductID}] = line
	return nil
}

func (m *Memory) DeleteCartLine(_ context.Context, username, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.cart, cartKey{username, productID})
	return nil
}

func (m *Memory) ListCartLines(_ context.Context, username string) ([]model.CartLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := []model.CartLine{}
	for key, line := range m.cart {
		if key.username == username {
			res = append(res, line)
		}
	}
	return res, nil
}

func (m *Memory) GetOrder(_ context.Context, id string) (model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.orders[id]
	if !ok {
		return model.Order{}, ErrNotFound
	}
	return copyOrder(o), nil
}

func (m *Memory) PutOrder(_ context.Context, o model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.orders[o.ID] = copyOrder(o)
	return nil
}

func (m *Memory) DeleteOrder(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.orders, id)
	return nil
}

func (m *Memory) ListOrders(_ context.Context) ([]model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]model.Order, 0, len(m.orders))
	for _, o := range m.orders {
		res = append(res, copyOrder(o))
	}
	return res, nil
}

func (m *Memory) GetSeller(_ context.Context, id string) (model.Seller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sellers[id]
	if !ok {
		return model.Seller{}, ErrNotFound
	}
	return s, nil
}

func (m *Memory) PutSeller(_ context.Context, s model.Seller) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sellers[s.ID] = s
	return nil
}

func (m *Memory) DeleteSeller(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sellers, id)
	return nil
}

func (m *Memory) ListSellers(_ context.Context) ([]model.Seller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]model.Seller, 0, len(m.sellers))
	for _, s := range m.sellers {
		res = append(res, s)
	}
	return res, nil
}

func (m *Memory) Close() error { return nil }

// copyOrder detaches the item snapshot so callers can never alias the stored
// slice.
func copyOrder(o model.Order) model.Order {
	items := make([]model.CartLine, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
