package store

import (
	"context"
	"errors"

	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
)

// ErrNotFound is returned by every lookup that misses its key.
var ErrNotFound = errors.New("not found")

// Store is the storage contract shared by the in-memory and sqlite backends:
// five collections with point lookups, unconditional overwrites, deletes by
// key, a range query on the cart partition key, and full scans. Scans are
// unbounded on purpose; the callers tolerate that rather than optimize it.
type Store interface {
	GetUser(ctx context.Context, username string) (model.User, error)
	PutUser(ctx context.Context, u model.User) error
	ListUsers(ctx context.Context) ([]model.User, error)

	GetProduct(ctx context.Context, id string) (model.Product, error)
	PutProduct(ctx context.Context, p model.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]model.Product, error)

	GetCartLine(ctx context.Context, username, productID string) (model.CartLine, error)
	PutCartLine(ctx context.Context, line model.CartLine) error
	DeleteCartLine(ctx context.Context, username, productID string) error
	ListCartLines(ctx context.Context, username string) ([]model.CartLine, error)

	GetOrder(ctx context.Context, id string) (model.Order, error)
	PutOrder(ctx context.Context, o model.Order) error
	DeleteOrder(ctx context.Context, id string) error
	ListOrders(ctx context.Context) ([]model.Order, error)

	GetSeller(ctx context.Context, id string) (model.Seller, error)
	PutSeller(ctx context.Context, s model.Seller) error
	DeleteSeller(ctx context.Context, id string) error
	ListSellers(ctx context.Context) ([]model.Seller, error)

	Close() error
}
