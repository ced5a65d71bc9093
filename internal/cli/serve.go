package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/neha18-dp/freshbasket-aws-project/internal/checkout"
	"github.com/neha18-dp/freshbasket-aws-project/internal/config"
	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
	"github.com/neha18-dp/freshbasket-aws-project/internal/notify"
	"github.com/neha18-dp/freshbasket-aws-project/internal/service"
	"github.com/neha18-dp/freshbasket-aws-project/internal/store"
	"github.com/neha18-dp/freshbasket-aws-project/internal/web"
)

// NewServeCommand creates the serve command, which assembles the store,
// services and HTTP server and blocks serving requests.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the FreshBasket HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	return cmd
}

func runServe(ctx context.Context, opts *RootOptions, configPath string) error {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	notifier := notify.NewNotifier(&notify.LogPublisher{Logger: logger}, cfg.Notify.Topic, logger)

	auth := service.NewAuthService(st, notifier)
	catalog := service.NewCatalogService(st, notifier)
	cart := service.NewCartService(st)
	sellers := service.NewSellerService(st)
	co := checkout.New(st, notifier, logger)

	if err := seed(ctx, cfg.Seed, st); err != nil {
		return err
	}

	server := web.NewServer(auth, catalog, cart, sellers, co, logger)

	logger.Info("server started", "addr", cfg.Listen, "backend", cfg.Store.Backend)
	return http.ListenAndServe(cfg.Listen, server.Routes())
}

func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		return store.OpenSQLite(cfg.Store.Path)
	default:
		return store.NewMemory(), nil
	}
}

// seed provisions configured accounts, demo products and seller records.
// Existing users are left alone so a restart never resets passwords; the
// catalog and seller list are seeded only when empty.
func seed(ctx context.Context, cfg config.SeedConfig, st store.Store) error {
	for _, a := range cfg.Accounts {
		_, err := st.GetUser(ctx, a.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("seed accounts: %w", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed accounts: %w", err)
		}
		u := model.User{
			Username:     a.Username,
			PasswordHash: string(hash),
			Email:        a.Email,
			Role:         model.Role(a.Role),
		}
		if err := st.PutUser(ctx, u); err != nil {
			return fmt.Errorf("seed accounts: %w", err)
		}
	}

	products, err := st.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if len(products) == 0 {
		for _, p := range cfg.Products {
			err := st.PutProduct(ctx, model.Product{
				ID:          uuid.New().String(),
				Name:        p.Name,
				Weight:      p.Weight,
				Rate:        p.Rate,
				Description: p.Description,
				Image:       p.Image,
				Category:    p.Category,
			})
			if err != nil {
				return fmt.Errorf("seed products: %w", err)
			}
		}
	}

	sellers, err := st.ListSellers(ctx)
	if err != nil {
		return fmt.Errorf("seed sellers: %w", err)
	}
	if len(sellers) == 0 {
		for _, s := range cfg.Sellers {
			err := st.PutSeller(ctx, model.Seller{
				ID:      uuid.New().String(),
				Name:    s.Name,
				Phone:   s.Phone,
				Email:   s.Email,
				Address: s.Address,
			})
			if err != nil {
				return fmt.Errorf("seed sellers: %w", err)
			}
		}
	}

	return nil
}
