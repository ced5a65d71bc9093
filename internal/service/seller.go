package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
	"github.com/neha18-dp/freshbasket-aws-project/internal/store"
)

// SellerService manages the administrative seller records shown on the admin
// pages. The records have no connection to seller login accounts.
type SellerService struct {
	store store.Store
}

func NewSellerService(st store.Store) *SellerService {
	return &SellerService{store: st}
}

func (s *SellerService) Add(ctx context.Context, sel model.Seller) (model.Seller, error) {
	if sel.Name == "" {
		return model.Seller{}, &ValidationError{Field: "name", Reason: "required"}
	}
	if sel.ID == "" {
		sel.ID = uuid.New().String()
	}
	if err := s.store.PutSeller(ctx, sel); err != nil {
		return model.Seller{}, fmt.Errorf("add seller: %w", err)
	}
	return sel, nil
}

func (s *SellerService) List(ctx context.Context) ([]model.Seller, error) {
	return s.store.ListSellers(ctx)
}

func (s *SellerService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteSeller(ctx, id)
}
