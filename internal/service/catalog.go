package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
	"github.com/neha18-dp/freshbasket-aws-project/internal/notify"
	"github.com/neha18-dp/freshbasket-aws-project/internal/store"
)

type CatalogService struct {
	store    store.Store
	notifier *notify.Notifier
}

func NewCatalogService(st store.Store, notifier *notify.Notifier) *CatalogService {
	return &CatalogService{store: st, notifier: notifier}
}

// List scans all products; a non-empty category filters by case-insensitive
// equality.
func (s *CatalogService) List(ctx context.Context, category string) ([]model.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if category == "" {
		return products, nil
	}

	filtered := []model.Product{}
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (model.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// ProductInput carries raw form values; Rate arrives as a string and is
// validated here.
type ProductInput struct {
	Name        string
	Weight      string
	Rate        string
	Description string
	Image       string
	Category    string
}

func (in ProductInput) parse() (model.Product, error) {
	if in.Name == "" {
		return model.Product{}, &ValidationError{Field: "name", Reason: "required"}
	}
	rate, err := strconv.Atoi(in.Rate)
	if err != nil {
		return model.Product{}, &ValidationError{Field: "rate", Reason: "must be an integer"}
	}
	return model.Product{
		Name:        in.Name,
		Weight:      in.Weight,
		Rate:        rate,
		Description: in.Description,
		Image:       in.Image,
		Category:    in.Category,
	}, nil
}

func (s *CatalogService) Add(ctx context.Context, seller string, in ProductInput) (model.Product, error) {
	p, err := in.parse()
	if err != nil {
		return model.Product{}, err
	}
	p.ID = uuid.New().String()

	if err := s.store.PutProduct(ctx, p); err != nil {
		return model.Product{}, fmt.Errorf("add product: %w", err)
	}

	s.notifier.ProductAdded(ctx, seller, p.Name)
	return p, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, in ProductInput) (model.Product, error) {
	if _, err := s.store.GetProduct(ctx, id); err != nil {
		return model.Product{}, err
	}

	p, err := in.parse()
	if err != nil {
		return model.Product{}, err
	}
	p.ID = id

	if err := s.store.PutProduct(ctx, p); err != nil {
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// Delete removes the product by key. Placed orders keep their snapshots and
// existing cart lines are left alone; there is no cascade.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
