package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/neha18-dp/freshbasket-aws-project/internal/checkout"
	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
	"github.com/neha18-dp/freshbasket-aws-project/internal/notify"
	"github.com/neha18-dp/freshbasket-aws-project/internal/service"
	"github.com/neha18-dp/freshbasket-aws-project/internal/store"
	"github.com/neha18-dp/freshbasket-aws-project/internal/web"
)

var checkoutTokenRe = regexp.MustCompile(`name="checkout_token" value="([^"]+)"`)

type StorefrontTestSuite struct {
	suite.Suite
	ts      *httptest.Server
	st      *store.Memory
	co      *checkout.Checkout
	catalog *service.CatalogService
}

func (s *StorefrontTestSuite) SetupSuite() {
	s.st = store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := notify.NewNotifier(&notify.LogPublisher{Logger: logger}, "FreshBasket", logger)

	auth := service.NewAuthService(s.st, notifier)
	s.catalog = service.NewCatalogService(s.st, notifier)
	cart := service.NewCartService(s.st)
	sellers := service.NewSellerService(s.st)
	s.co = checkout.New(s.st, notifier, logger)

	ctx := context.Background()
	accounts := []struct {
		username string
		password string
		role     model.Role
	}{
		{"admin", "admin123", model.RoleAdmin},
		{"seller1", "seller123", model.RoleSeller},
	}
	for _, acc := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		s.Require().NoError(err)
		s.Require().NoError(s.st.PutUser(ctx, model.User{
			Username:     acc.username,
			PasswordHash: string(hash),
			Role:         acc.role,
		}))
	}
	s.Require().NoError(s.st.PutSeller(ctx, model.Seller{ID: "s1", Name: "Ravi Fresh Farms"}))

	products := []model.Product{
		{ID: "apple", Name: "Apple", Weight: "1kg", Rate: 120, Category: "fruits"},
		{ID: "tomato", Name: "Tomato", Weight: "500g", Rate: 40, Category: "vegetables"},
	}
	for _, p := range products {
		s.Require().NoError(s.st.PutProduct(ctx, p))
	}

	server := web.NewServer(auth, s.catalog, cart, sellers, s.co, logger)
	s.ts = httptest.NewServer(server.Routes())
}

func (s *StorefrontTestSuite) TearDownSuite() {
	s.ts.Close()
}

func (s *StorefrontTestSuite) newClient() *http.Client {
	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	return &http.Client{Jar: jar}
}

func (s *StorefrontTestSuite) readBody(resp *http.Response) string {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return string(body)
}

func (s *StorefrontTestSuite) addToCart(client *http.Client, productID string) bool {
	resp, err := client.PostForm(s.ts.URL+"/addtocart/"+productID, url.Values{})
	s.Require().NoError(err)
	defer resp.Body.Close()

	var ack struct {
		Success bool `json:"success"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&ack))
	return ack.Success
}

func (s *StorefrontTestSuite) TestShopperJourney() {
	client := s.newClient()

	resp, err := client.PostForm(s.ts.URL+"/signup", url.Values{
		"username": {"meera"},
		"password": {"secret"},
		"email":    {"meera@example.com"},
	})
	s.Require().NoError(err)
	s.readBody(resp)
	s.Equal("/home", resp.Request.URL.Path)

	s.True(s.addToCart(client, "apple"))
	s.True(s.addToCart(client, "apple"))
	s.True(s.addToCart(client, "tomato"))

	resp, err = client.Get(s.ts.URL + "/cart")
	s.Require().NoError(err)
	body := s.readBody(resp)
	s.Contains(body, "Apple")
	s.Contains(body, "240")

	match := checkoutTokenRe.FindStringSubmatch(body)
	s.Require().Len(match, 2, "Expected a checkout token in the cart page")
	token := match[1]

	resp, err = client.PostForm(s.ts.URL+"/placeorder", url.Values{"checkout_token": {token}})
	s.Require().NoError(err)
	body = s.readBody(resp)
	s.Equal("/myorders", resp.Request.URL.Path)
	s.Contains(body, "Apple x2")
	s.Contains(body, "Tomato x1")

	// A double submit of the same form replays the first checkout.
	resp, err = client.PostForm(s.ts.URL+"/placeorder", url.Values{"checkout_token": {token}})
	s.Require().NoError(err)
	s.readBody(resp)
	s.Equal("/myorders", resp.Request.URL.Path)

	orders, err := s.co.ListOrders(context.Background(), "meera")
	s.Require().NoError(err)
	s.Require().Len(orders, 1)
	s.Equal(model.OrderStatusOrdered, orders[0].Status)
	s.Equal(280, orders[0].Total())

	cart, err := s.st.ListCartLines(context.Background(), "meera")
	s.Require().NoError(err)
	s.Empty(cart)
}

func (s *StorefrontTestSuite) TestSellerWorkflow() {
	client := s.newClient()

	resp, err := client.PostForm(s.ts.URL+"/login", url.Values{
		"username": {"seller1"},
		"password": {"seller123"},
	})
	s.Require().NoError(err)
	body := s.readBody(resp)
	s.Equal("/seller", resp.Request.URL.Path)
	s.Contains(body, "Seller Dashboard")

	resp, err = client.PostForm(s.ts.URL+"/seller/add-product", url.Values{
		"fruit_name":     {"Mango"},
		"fruit_weight":   {"1"},
		"fruit_rate":     {"150"},
		"fruit_desc":     {"Alphonso"},
		"fruit_category": {"fruits"},
	})
	s.Require().NoError(err)
	body = s.readBody(resp)
	s.Equal("/seller/products", resp.Request.URL.Path)
	s.Contains(body, "Mango")

	// The new product shows up on the public category page.
	resp, err = http.Get(s.ts.URL + "/fruits")
	s.Require().NoError(err)
	s.Contains(s.readBody(resp), "Mango")
}

func (s *StorefrontTestSuite) TestAdminWorkflow() {
	client := s.newClient()

	resp, err := client.PostForm(s.ts.URL+"/login", url.Values{
		"username": {"admin"},
		"password": {"admin123"},
	})
	s.Require().NoError(err)
	body := s.readBody(resp)
	s.Equal("/admin", resp.Request.URL.Path)
	s.Contains(body, "Admin Dashboard")

	resp, err = client.Get(s.ts.URL + "/admin/sellers")
	s.Require().NoError(err)
	s.Contains(s.readBody(resp), "Ravi Fresh Farms")

	s.Require().NoError(s.st.PutProduct(context.Background(),
		model.Product{ID: "okra", Name: "Okra", Rate: 30, Category: "vegetables"}))

	resp, err = client.Get(s.ts.URL + "/admin/delete/okra")
	s.Require().NoError(err)
	body = s.readBody(resp)
	s.Equal("/admin/products", resp.Request.URL.Path)
	s.NotContains(body, "Okra")
}

func (s *StorefrontTestSuite) TestRoleGates() {
	// Anonymous visitors land back on the public page.
	client := s.newClient()
	resp, err := client.Get(s.ts.URL + "/seller")
	s.Require().NoError(err)
	s.readBody(resp)
	s.Equal("/", resp.Request.URL.Path)

	// A shopper cannot reach the admin dashboard either.
	resp, err = client.PostForm(s.ts.URL+"/signup", url.Values{
		"username": {"gated"},
		"password": {"secret"},
		"email":    {"gated@example.com"},
	})
	s.Require().NoError(err)
	s.readBody(resp)

	resp, err = client.Get(s.ts.URL + "/admin")
	s.Require().NoError(err)
	s.readBody(resp)
	s.Equal("/", resp.Request.URL.Path)
}

func (s *StorefrontTestSuite) TestBadLogin() {
	client := s.newClient()

	resp, err := client.PostForm(s.ts.URL+"/login", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	})
	s.Require().NoError(err)
	body := s.readBody(resp)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Contains(body, "User not found")
}

func (s *StorefrontTestSuite) TestDuplicateSignup() {
	client := s.newClient()

	resp, err := client.PostForm(s.ts.URL+"/signup", url.Values{
		"username": {"seller1"},
		"password": {"whatever"},
		"email":    {"dup@example.com"},
	})
	s.Require().NoError(err)
	s.readBody(resp)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestStorefrontTestSuite(t *testing.T) {
	suite.Run(t, new(StorefrontTestSuite))
}
