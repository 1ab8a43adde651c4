package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	ledger "github.com/Beyondthell/shopify-auction-backend/internal/ledgerService"
	"github.com/Beyondthell/shopify-auction-backend/internal/repository"
	"github.com/Beyondthell/shopify-auction-backend/internal/server"
)

const testAdminSecret = "test-admin-secret"

// recorderMailer captures winner emails instead of sending them.
type recorderMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	To        string
	Name      string
	ProductID string
	Amount    decimal.Decimal
}

func (m *recorderMailer) SendWinnerEmail(_ context.Context, to, bidderName, productID string, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Name: bidderName, ProductID: productID, Amount: amount})
	return nil
}

func (m *recorderMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

// SetupTestRouter initializes the router with the in-memory store for
// integration testing. Rate limits are set high enough to stay out of
// the way of the concurrency tests.
func SetupTestRouter() (*gin.Engine, *recorderMailer) {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()
	service := ledger.NewLedgerService(repo)
	mailer := &recorderMailer{}
	router := server.SetupRouter(service, mailer, server.RouterConfig{
		AdminSecret:      testAdminSecret,
		BidRatePerMinute: 100000,
		BidRateBurst:     10000,
	})
	return router, mailer
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// parses the JSON envelope. A non-empty adminSecret is sent in the admin
// header.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any, adminSecret string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if adminSecret != "" {
		req.Header.Set("X-Admin-Secret", adminSecret)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}
