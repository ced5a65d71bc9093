package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is the durable backend. Order item snapshots are stored as a JSON
// document column, mirroring the document-store shape of the Orders
// collection.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at path and applies pragmas and
// the schema. Safe to call on an existing database.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) GetUser(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := s.db.QueryRowContext(ctx, `
		SELECT username, password_hash, email, phone, address, role
		FROM users WHERE username = ?
	`, username).Scan(&u.Username, &u.PasswordHash, &u.Email, &u.Phone, &u.Address, &u.Role)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *SQLite) PutUser(ctx context.Context, u model.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, email, phone, address, role)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			password_hash = excluded.password_hash,
			email = excluded.email,
			phone = excluded.phone,
			address = excluded.address,
			role = excluded.role
	`, u.Username, u.PasswordHash, u.Email, u.Phone, u.Address, u.Role)
	if err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

func (s *SQLite) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, password_hash, email, phone, address, role FROM users
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var res []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Username, &u.PasswordHash, &u.Email, &u.Phone, &u.Address, &u.Role); err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (s *SQLite) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT product_id, name, weight, rate, description, image, category
		FROM products WHERE product_id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Weight, &p.Rate, &p.Description, &p.Image, &p.Category)
	if err == sql.ErrNoRows {
		return model.Product{}, ErrNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *SQLite) PutProduct(ctx context.Context, p model.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (product_id, name, weight, rate, description, image, category)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(product_id) DO UPDATE SET
			name = excluded.name,
			weight = excluded.weight,
			rate = excluded.rate,
			description = excluded.description,
			image = excluded.image,
			category = excluded.category
	`, p.ID, p.Name, p.Weight, p.Rate, p.Description, p.Image, p.Category)
	if err != nil {
		return fmt.Errorf("put product: %w", err)
	}
	return nil
}

func (s *SQLite) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = ?`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (s *SQLite) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, name, weight, rate, description, image, category FROM products
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var res []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Weight, &p.Rate, &p.Description, &p.Image, &p.Category); err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (s *SQLite) GetCartLine(ctx context.Context, username, productID string) (model.CartLine, error) {
	var line model.CartLine
	err := s.db.QueryRowContext(ctx, `
		SELECT username, product_id, name, price, qty, status
		FROM cart WHERE username = ? AND product_id = ?
	`, username, productID).Scan(&line.Username, &line.ProductID, &line.Name, &line.Price, &line.Qty, &line.Status)
	if err == sql.ErrNoRows {
		return model.CartLine{}, ErrNotFound
	}
	if err != nil {
		return model.CartLine{}, fmt.Errorf("get cart line: %w", err)
	}
	return line, nil
}

func (s *SQLite) PutCartLine(ctx context.Context, line model.CartLine) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cart (username, product_id, name, price, qty, status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(username, product_id) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			qty = excluded.qty,
			status = excluded.status
	`, line.Username, line.ProductID, line.Name, line.Price, line.Qty, line.Status)
	if err != nil {
		return fmt.Errorf("put cart line: %w", err)
	}
	return nil
}

func (s *SQLite) DeleteCartLine(ctx context.Context, username, productID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM cart WHERE username = ? AND product_id = ?
	`, username, productID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}

func (s *SQLite) ListCartLines(ctx context.Context, username string) ([]model.CartLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, product_id, name, price, qty, status
		FROM cart WHERE username = ?
	`, username)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()

	res := []model.CartLine{}
	for rows.Next() {
		var line model.CartLine
		if err := rows.Scan(&line.Username, &line.ProductID, &line.Name, &line.Price, &line.Qty, &line.Status); err != nil {
			return nil, fmt.Errorf("list cart lines: %w", err)
		}
		res = append(res, line)
	}
	return res, rows.Err()
}

func (s *SQLite) GetOrder(ctx context.Context, id string) (model.Order, error) {
	var (
		o         model.Order
		items     string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT order_id, username, items, status, created_at
		FROM orders WHERE order_id = ?
	`, id).Scan(&o.ID, &o.Username, &items, &o.Status, &createdAt)
	if err == sql.ErrNoRows {
		return model.Order{}, ErrNotFound
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("get order: %w", err)
	}
	if err := unmarshalOrderRow(&o, items, createdAt); err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (s *SQLite) PutOrder(ctx context.Context, o model.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("put order: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (order_id, username, items, status, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(order_id) DO UPDATE SET
			username = excluded.username,
			items = excluded.items,
			status = excluded.status,
			created_at = excluded.created_at
	`, o.ID, o.Username, string(items), o.Status, o.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("put order: %w", err)
	}
	return nil
}

func (s *SQLite) DeleteOrder(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE order_id = ?`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (s *SQLite) ListOrders(ctx context.Context) ([]model.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT order_id, username, items, status, created_at FROM orders
	`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var res []model.Order
	for rows.Next() {
		var (
			o         model.Order
			items     string
			createdAt string
		)
		if err := rows.Scan(&o.ID, &o.Username, &items, &o.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		if err := unmarshalOrderRow(&o, items, createdAt); err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, rows.Err()
}

func (s *SQLite) GetSeller(ctx context.Context, id string) (model.Seller, error) {
	var sel model.Seller
	err := s.db.QueryRowContext(ctx, `
		SELECT seller_id, name, phone, email, address FROM sellers WHERE seller_id = ?
	`, id).Scan(&sel.ID, &sel.Name, &sel.Phone, &sel.Email, &sel.Address)
	if err == sql.ErrNoRows {
		return model.Seller{}, ErrNotFound
	}
	if err != nil {
		return model.Seller{}, fmt.Errorf("get seller: %w", err)
	}
	return sel, nil
}

func (s *SQLite) PutSeller(ctx context.Context, sel model.Seller) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sellers (seller_id, name, phone, email, address)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(seller_id) DO UPDATE SET
			name = excluded.name,
			phone = excluded.phone,
			email = excluded.email,
			address = excluded.address
	`, sel.ID, sel.Name, sel.Phone, sel.Email, sel.Address)
	if err != nil {
		return fmt.Errorf("put seller: %w", err)
	}
	return nil
}

func (s *SQLite) DeleteSeller(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sellers WHERE seller_id = ?`, id); err != nil {
		return fmt.Errorf("delete seller: %w", err)
	}
	return nil
}

func (s *SQLite) ListSellers(ctx context.Context) ([]model.Seller, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seller_id, name, phone, email, address FROM sellers
	`)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()

	var res []model.Seller
	for rows.Next() {
		var sel model.Seller
		if err := rows.Scan(&sel.ID, &sel.Name, &sel.Phone, &sel.Email, &sel.Address); err != nil {
			return nil, fmt.Errorf("list sellers: %w", err)
		}
		res = append(res, sel)
	}
	return res, rows.Err()
}

func unmarshalOrderRow(o *model.Order, items, createdAt string) error {
	if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
		return fmt.Errorf("decode order items: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return fmt.Errorf("decode order timestamp: %w", err)
	}
	o.CreatedAt = t
	return nil
}
