package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	domainErrors "github.com/darkbyte-host/storefront/internal/domain/errors"
	"github.com/darkbyte-host/storefront/internal/domain/model"
	pkgAuth "github.com/darkbyte-host/storefront/internal/pkg/auth"
	"github.com/darkbyte-host/storefront/internal/server/http/dto"
	"github.com/darkbyte-host/storefront/internal/server/http/middleware"
	testhelpers "github.com/darkbyte-host/storefront/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.ClaimsContextKey, pkgAuth.Claims{UserID: id})
	}
}

func usd(amount float64) model.Money {
	return model.NewMoney(decimal.NewFromFloat(amount), currency.USD)
}

func TestCurrentClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.ClaimsContextKey, pkgAuth.Claims{UserID: 42, Admin: true})
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if !CurrentClaims(c).Admin {
		t.Fatal("expected admin claims")
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Email: "alice@example.com", Name: "Alice", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}
}

func TestAuthHandlerRegisterPassesPayload(t *testing.T) {
	email := testhelpers.RandomEmail()
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.RegisterRequest{Email: email, Name: "Alice", Password: password})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, gotEmail, gotName, gotPassword string) (string, error) {
		if gotEmail != email || gotName != "Alice" || gotPassword != password {
			t.Fatalf("unexpected payload passed to facade: %q %q %q", gotEmail, gotName, gotPassword)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	authHeader := resp.Header().Get("Authorization")
	if authHeader != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", authHeader)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	foundCookie := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "storefront_token" {
			if cookie.Value != "session-token" {
				t.Fatalf("unexpected token stored in cookie: %q", cookie.Value)
			}
			foundCookie = true
			break
		}
	}
	if !foundCookie {
		t.Fatal("expected auth cookie named storefront_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid credentials", body: []byte(`{"email":"","name":"","password":""}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusBadRequest},
		{name: "already exists", body: []byte(`{"email":"a@b.cd","name":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict},
		{name: "internal", body: []byte(`{"email":"a@b.cd","name":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "alice@example.com", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid", body: []byte(`{"email":"a@b.cd","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"email":"a@b.cd","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(tt.facade).Login, nil, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestCatalogHandlerList(t *testing.T) {
	facade := testhelpers.CatalogFacadeStub{ProductsFn: func(context.Context) ([]model.Product, error) {
		return []model.Product{{ID: 1, Name: "Dirt", Price: usd(4.99), RAMMB: 2048, DurationDays: 30, Active: true}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/products", NewCatalogHandler(facade).List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.ProductResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Price != "4.99" || decoded[0].Currency != "USD" {
		t.Fatalf("unexpected catalog %+v", decoded)
	}
}

func TestCatalogHandlerListError(t *testing.T) {
	facade := testhelpers.CatalogFacadeStub{ProductsFn: func(context.Context) ([]model.Product, error) {
		return nil, errors.New("boom")
	}}
	resp := performRequest(t, http.MethodGet, "/products", NewCatalogHandler(facade).List, nil, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestOrderHandlerCheckout(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{CheckoutFn: func(ctx context.Context, userID int64, items []model.CheckoutItem) (*model.Order, error) {
		if userID != 1 || len(items) != 1 || items[0].ProductID != 5 || items[0].Quantity != 2 {
			t.Fatalf("unexpected checkout arguments: user=%d items=%+v", userID, items)
		}
		return &model.Order{
			ID:            10,
			UserID:        userID,
			Subtotal:      usd(9.98),
			Discount:      usd(0),
			Total:         usd(9.98),
			Status:        model.OrderStatusPending,
			PaymentStatus: model.PaymentStatusPending,
		}, nil
	}}
	body := []byte(`{"items":[{"product_id":5,"quantity":2}]}`)
	resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(facade).Checkout, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var decoded dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.ID != 10 || decoded.Total != "9.98" || decoded.Status != "pending" {
		t.Fatalf("unexpected order %+v", decoded)
	}
}

func TestOrderHandlerCheckoutFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.OrderFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "empty order", body: []byte(`{"items":[]}`), facade: testhelpers.OrderFacadeStub{CheckoutFn: func(context.Context, int64, []model.CheckoutItem) (*model.Order, error) {
			return nil, domainErrors.ErrEmptyOrder
		}}, status: http.StatusBadRequest},
		{name: "invalid quantity", body: []byte(`{"items":[{"product_id":1,"quantity":0}]}`), facade: testhelpers.OrderFacadeStub{CheckoutFn: func(context.Context, int64, []model.CheckoutItem) (*model.Order, error) {
			return nil, domainErrors.ErrInvalidQuantity
		}}, status: http.StatusUnprocessableEntity},
		{name: "unavailable product", body: []byte(`{"items":[{"product_id":99,"quantity":1}]}`), facade: testhelpers.OrderFacadeStub{CheckoutFn: func(context.Context, int64, []model.CheckoutItem) (*model.Order, error) {
			return nil, domainErrors.ErrProductUnavailable
		}}, status: http.StatusUnprocessableEntity},
		{name: "internal", body: []byte(`{"items":[{"product_id":1,"quantity":1}]}`), facade: testhelpers.OrderFacadeStub{CheckoutFn: func(context.Context, int64, []model.CheckoutItem) (*model.Order, error) {
			return nil, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(tt.facade).Checkout, asUser(1), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerList(t *testing.T) {
	orders := []model.Order{
		{ID: 1, Subtotal: usd(5), Discount: usd(0), Total: usd(5)},
		{ID: 2, Subtotal: usd(10), Discount: usd(0), Total: usd(10)},
	}
	facade := testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, int64) ([]model.Order, error) {
		return orders, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", NewOrderHandler(facade).List, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != len(orders) {
		t.Fatalf("expected %d orders, got %d", len(orders), len(decoded))
	}
}

func TestOrderHandlerListEmpty(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, int64) ([]model.Order, error) {
		return nil, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", NewOrderHandler(facade).List, asUser(1), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestServerHandlerList(t *testing.T) {
	facade := testhelpers.ServerFacadeStub{ServersFn: func(context.Context, int64) ([]model.Server, error) {
		return []model.Server{{ID: 3, Name: "Dirt for Alice", PanelIdentifier: "a1b2c3d4", Status: model.ServerStatusActive}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/servers", NewServerHandler(facade).List, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.ServerResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Identifier != "a1b2c3d4" || decoded[0].Status != "active" {
		t.Fatalf("unexpected servers %+v", decoded)
	}
}

func TestServerHandlerListEmpty(t *testing.T) {
	facade := testhelpers.ServerFacadeStub{ServersFn: func(context.Context, int64) ([]model.Server, error) {
		return nil, nil
	}}
	resp := performRequest(t, http.MethodGet, "/servers", NewServerHandler(facade).List, asUser(1), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestInvoiceHandlerList(t *testing.T) {
	facade := testhelpers.InvoiceFacadeStub{InvoicesFn: func(context.Context, int64) ([]model.Invoice, error) {
		return []model.Invoice{{
			ID:       4,
			OrderID:  10,
			Number:   "DARKBYTE-2025-000042",
			Status:   model.InvoiceStatusPaid,
			Items:    []model.InvoiceItem{{Description: "Dirt", Quantity: 2, UnitPrice: decimal.NewFromFloat(4.99), LineTotal: decimal.NewFromFloat(9.98)}},
			Subtotal: decimal.NewFromFloat(9.98),
			Total:    decimal.NewFromFloat(9.98),
			Currency: currency.USD,
		}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/invoices", NewInvoiceHandler(facade).List, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.InvoiceResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Number != "DARKBYTE-2025-000042" || decoded[0].Items[0].LineTotal != "9.98" {
		t.Fatalf("unexpected invoices %+v", decoded)
	}
}

func TestAdminHandlerPendingOrders(t *testing.T) {
	var gotLimit int
	facade := testhelpers.AdminFacadeStub{PendingFn: func(ctx context.Context, limit int) ([]model.Order, error) {
		gotLimit = limit
		return []model.Order{{ID: 1, Subtotal: usd(5), Discount: usd(0), Total: usd(5), Status: model.OrderStatusPending}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/admin/orders", NewAdminHandler(facade).PendingOrders, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotLimit != defaultPendingLimit {
		t.Fatalf("expected default limit, got %d", gotLimit)
	}
}

func TestAdminHandlerVerify(t *testing.T) {
	facade := testhelpers.AdminFacadeStub{VerifyFn: func(ctx context.Context, orderID int64) (*model.VerificationResult, error) {
		return &model.VerificationResult{
			OrderID:          orderID,
			Success:          false,
			ServersCreated:   1,
			Errors:           []string{"item 101: no free allocations"},
			InvoiceGenerated: true,
			Message:          "order 10 verified with 1 failures, 1 servers created",
		}, nil
	}}
	router := gin.New()
	router.POST("/admin/orders/:id/verify", NewAdminHandler(facade).Verify)
	req := httptest.NewRequest(http.MethodPost, "/admin/orders/10/verify", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var decoded dto.VerificationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.OrderID != 10 || decoded.Success || decoded.ServersCreated != 1 || len(decoded.Errors) != 1 || !decoded.InvoiceGenerated {
		t.Fatalf("unexpected verification response %+v", decoded)
	}
}

func TestAdminHandlerVerifyFailures(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		facade testhelpers.AdminFacadeStub
		status int
	}{
		{name: "bad id", path: "/admin/orders/abc/verify", status: http.StatusBadRequest},
		{name: "not found", path: "/admin/orders/99/verify", facade: testhelpers.AdminFacadeStub{VerifyFn: func(context.Context, int64) (*model.VerificationResult, error) {
			return nil, domainErrors.ErrNotFound
		}}, status: http.StatusNotFound},
		{name: "already verified", path: "/admin/orders/10/verify", facade: testhelpers.AdminFacadeStub{VerifyFn: func(context.Context, int64) (*model.VerificationResult, error) {
			return nil, domainErrors.ErrAlreadyVerified
		}}, status: http.StatusConflict},
		{name: "internal", path: "/admin/orders/10/verify", facade: testhelpers.AdminFacadeStub{VerifyFn: func(context.Context, int64) (*model.VerificationResult, error) {
			return nil, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/admin/orders/:id/verify", NewAdminHandler(tt.facade).Verify)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, nil))
			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestAdminHandlerReject(t *testing.T) {
	router := gin.New()
	router.POST("/admin/orders/:id/reject", NewAdminHandler(testhelpers.AdminFacadeStub{}).Reject)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/orders/10/reject", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	conflicting := testhelpers.AdminFacadeStub{RejectFn: func(context.Context, int64) error {
		return domainErrors.ErrAlreadyVerified
	}}
	router = gin.New()
	router.POST("/admin/orders/:id/reject", NewAdminHandler(conflicting).Reject)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/orders/10/reject", nil))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}

func TestAdminHandlerServerManagement(t *testing.T) {
	var suspended, resumed []int64
	facade := testhelpers.AdminFacadeStub{
		SuspendFn: func(ctx context.Context, id int64) error {
			suspended = append(suspended, id)
			return nil
		},
		ResumeFn: func(ctx context.Context, id int64) error {
			resumed = append(resumed, id)
			return nil
		},
	}

	router := gin.New()
	handler := NewAdminHandler(facade)
	router.POST("/admin/servers/:id/suspend", handler.SuspendServer)
	router.POST("/admin/servers/:id/resume", handler.ResumeServer)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/servers/5/suspend", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/servers/5/resume", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if len(suspended) != 1 || suspended[0] != 5 || len(resumed) != 1 || resumed[0] != 5 {
		t.Fatalf("unexpected calls: suspended=%v resumed=%v", suspended, resumed)
	}

	missing := testhelpers.AdminFacadeStub{SuspendFn: func(context.Context, int64) error {
		return domainErrors.ErrNotFound
	}}
	router = gin.New()
	router.POST("/admin/servers/:id/suspend", NewAdminHandler(missing).SuspendServer)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/servers/99/suspend", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
