package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
	"github.com/neha18-dp/freshbasket-aws-project/internal/store"
)

type CartService struct {
	store store.Store
}

func NewCartService(st store.Store) *CartService {
	return &CartService{store: st}
}

// Add puts the product into the user's cart: an existing (user, product) line
// gets its quantity bumped, otherwise a new Pending line is created with the
// product's current rate. There is no quantity cap and no stock check.
func (s *CartService) Add(ctx context.Context, username, productID string) error {
	line, err := s.store.GetCartLine(ctx, username, productID)
	if err == nil {
		line.Qty++
		return s.store.PutCartLine(ctx, line)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("add to cart: %w", err)
	}

	p, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}

	return s.store.PutCartLine(ctx, model.CartLine{
		Username:  username,
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Rate,
		Qty:       1,
		Status:    model.LineStatusPending,
	})
}

// View returns the user's cart lines with derived totals, in no particular
// order.
func (s *CartService) View(ctx context.Context, username string) ([]model.CartLine, error) {
	lines, err := s.store.ListCartLines(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("view cart: %w", err)
	}
	for i := range lines {
		if lines[i].Status == "" {
			lines[i].Status = model.LineStatusPending
		}
		lines[i].TotalPrice = lines[i].Price * lines[i].Qty
	}
	return lines, nil
}
