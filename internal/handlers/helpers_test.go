package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/foodie-express/internal/auth"
	"github.com/Lixing-Zhang/foodie-express/internal/middleware"
	"github.com/Lixing-Zhang/foodie-express/internal/models"
	"github.com/Lixing-Zhang/foodie-express/internal/repository"
	"github.com/Lixing-Zhang/foodie-express/internal/service"
	"github.com/Lixing-Zhang/foodie-express/internal/session"
	"github.com/Lixing-Zhang/foodie-express/internal/storage/memory"
	"github.com/Lixing-Zhang/foodie-express/pkg/logger"
)

// stubSubmitter records submitted orders and fails when err is set
type stubSubmitter struct {
	mu     sync.Mutex
	err    error
	orders []*models.Order
}

func (s *stubSubmitter) Submit(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.orders = append(s.orders, order)
	return nil
}

type testServer struct {
	handler   http.Handler
	sessions  *session.Manager
	store     *memory.Store
	submitter *stubSubmitter
}

func newTestServer(t *testing.T, repo repository.CatalogRepository) *testServer {
	t.Helper()

	if repo == nil {
		repo = repository.NewInMemoryCatalogRepository()
	}
	log := logger.Discard()
	pricing := service.Pricing{
		DeliveryFee:           decimal.RequireFromString("3.99"),
		FreeDeliveryThreshold: decimal.NewFromInt(25),
	}
	store := memory.New()
	sessions := session.NewManager(store, log)
	submitter := &stubSubmitter{}

	handler := NewRouter(RouterConfig{
		Catalog:  service.NewCatalogService(repo),
		Carts:    service.NewCartService(repo, pricing),
		Checkout: service.NewCheckoutService(submitter, pricing, log),
		Sessions: sessions,
		Auth:     auth.NewAuthenticator(),
	}, log)

	return &testServer{
		handler:   handler,
		sessions:  sessions,
		store:     store,
		submitter: submitter,
	}
}

// do sends a request with an optional JSON body and session id
func (s *testServer) do(t *testing.T, method, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

// newSession opens a session through the API and returns its id
func (s *testServer) newSession(t *testing.T) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/sessions", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: status = %d, want %d", w.Code, http.StatusCreated)
	}

	var resp SessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode session response: %v", err)
	}
	return resp.SessionID
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) service.CartView {
	t.Helper()

	var view service.CartView
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode cart: %v", err)
	}
	return view
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp["error"]
}
