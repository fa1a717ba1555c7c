package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medinventory-api/internal/application/auth"
	"github.com/jhoicas/medinventory-api/internal/bootstrap"
	"github.com/jhoicas/medinventory-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/medinventory-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/medinventory-api/pkg/jwt"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repos := bootstrap.MemoryRepositories(memory.NewStore())
	svc := bootstrap.NewServices(repos, bootstrap.Options{
		JWT:               auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		ExpiryWarningDays: 30,
	})
	app := apphttp.NewServer(svc.RouterDeps(testJWTSecret), apphttp.ServerOptions{
		AppName: "medinventory-test",
		Metrics: apphttp.NewMetrics(),
	})
	return &testServer{t: t, app: app}
}

func (s *testServer) token(role string) string {
	s.t.Helper()
	tok, _, err := pkgjwt.Generate(testJWTSecret, testUserID, testUserName, role, testIssuer, testExpMin)
	require.NoError(s.t, err)
	return tok
}

// do envía la petición y devuelve status y body.
func (s *testServer) do(method, path, token string, body any) (int, []byte, *http.Response) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, raw, resp
}

func (s *testServer) doJSON(method, path, token string, body any, wantStatus int) map[string]any {
	s.t.Helper()
	status, raw, _ := s.do(method, path, token, body)
	require.Equal(s.t, wantStatus, status, "%s %s: %s", method, path, raw)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(s.t, json.Unmarshal(raw, &out))
	}
	return out
}

func (s *testServer) createProduct(token, name string, qty, reorder int) string {
	s.t.Helper()
	out := s.doJSON(http.MethodPost, "/api/products", token, map[string]any{
		"name":          name,
		"category":      "Medicines",
		"quantity":      qty,
		"unit":          "box",
		"expiry_date":   "2031-06-30",
		"reorder_level": reorder,
		"cost_per_unit": "2.50",
	}, http.StatusCreated)
	return out["id"].(string)
}

func TestHealthMetricsAndRequestID(t *testing.T) {
	s := newTestServer(t)

	status, raw, resp := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"status":"ok"`)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	status, raw, _ = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "medinventory_http_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	status, raw, _ := s.do(http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(raw), "MISSING_TOKEN")
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	user := s.doJSON(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "Nurse@Example.com", "password": "supersecret", "name": "Nurse Joy",
	}, http.StatusCreated)
	assert.Equal(t, "authenticated", user["role"])

	s.doJSON(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "nurse@example.com", "password": "supersecret",
	}, http.StatusConflict)

	s.doJSON(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "not-an-email", "password": "short",
	}, http.StatusBadRequest)

	login := s.doJSON(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "nurse@example.com", "password": "supersecret",
	}, http.StatusOK)
	token, _ := login["token"].(string)
	require.NotEmpty(t, token)

	session := s.doJSON(http.MethodGet, "/api/auth/session", token, nil, http.StatusOK)
	assert.Equal(t, "nurse@example.com", session["email"])

	bad := s.doJSON(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "nurse@example.com", "password": "wrong-password",
	}, http.StatusUnauthorized)
	assert.Equal(t, "UNAUTHORIZED", bad["code"])

	// Gestión de usuarios solo para administradores.
	s.doJSON(http.MethodGet, "/api/users", token, nil, http.StatusForbidden)
	s.doJSON(http.MethodPost, "/api/users", s.token("admin"), map[string]any{
		"email": "admin@example.com", "password": "supersecret", "role": "admin",
	}, http.StatusCreated)
	status, raw, _ := s.do(http.MethodGet, "/api/users", s.token("admin"), nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "admin@example.com")
}

func TestProductEndpoints(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("authenticated")

	id := s.createProduct(tok, "Paracetamol", 4, 10)

	invalid := s.doJSON(http.MethodPost, "/api/products", tok, map[string]any{"name": "x"}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", invalid["code"])
	assert.Contains(t, invalid["message"], "category")

	s.doJSON(http.MethodGet, "/api/products/"+uuid.NewString(), tok, nil, http.StatusNotFound)

	got := s.doJSON(http.MethodGet, "/api/products/"+id, tok, nil, http.StatusOK)
	assert.Equal(t, true, got["low_stock"])

	status, raw, _ := s.do(http.MethodGet, "/api/products/low-stock", tok, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), id)

	status, raw, _ = s.do(http.MethodGet, "/api/products/reorder-suggestions", tok, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "Paracetamol")

	s.doJSON(http.MethodPost, "/api/products/"+id+"/stock", tok, map[string]any{"quantity": 6}, http.StatusCreated)
	got = s.doJSON(http.MethodGet, "/api/products/"+id, tok, nil, http.StatusOK)
	assert.EqualValues(t, 10, got["quantity"])

	status, raw, _ = s.do(http.MethodGet, "/api/products/"+id+"/movements", tok, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"IN"`)

	updated := s.doJSON(http.MethodPut, "/api/products/"+id, tok, map[string]any{"name": "Paracetamol 500mg"}, http.StatusOK)
	assert.Equal(t, "Paracetamol 500mg", updated["name"])

	s.doJSON(http.MethodDelete, "/api/products/"+id, tok, nil, http.StatusNoContent)
	s.doJSON(http.MethodGet, "/api/products/"+id, tok, nil, http.StatusNotFound)
}

func TestMalformedIDsAreBadRequests(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("authenticated")

	for _, path := range []string{
		"/api/products/abc",
		"/api/clients/abc",
		"/api/pharmacies/abc",
		"/api/assignments/abc",
		"/api/invoices/abc",
		"/api/invoices/" + uuid.NewString() + "/items/abc",
		"/api/payments?invoice_id=abc",
		"/api/invoices?pharmacy_id=abc",
	} {
		method := http.MethodGet
		if strings.Contains(path, "/items/") {
			method = http.MethodDelete
		}
		out := s.doJSON(method, path, tok, nil, http.StatusBadRequest)
		assert.Equal(t, "INVALID_ID", out["code"], path)
	}

	out := s.doJSON(http.MethodPost, "/api/invoices", tok, map[string]any{
		"pharmacy_id": "x",
		"items":       []map[string]any{{"product_id": "y", "quantity": 1}},
	}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", out["code"])
	assert.Contains(t, out["message"], "pharmacy_id")

	s.doJSON(http.MethodPost, "/api/assignments", tok, map[string]any{
		"product_id": "abc", "client_id": uuid.NewString(), "quantity": 1,
	}, http.StatusBadRequest)
	s.doJSON(http.MethodGet, "/api/assignments?client_id=abc", tok, nil, http.StatusBadRequest)
	s.doJSON(http.MethodGet, "/api/reports/assignments?client_id=abc", tok, nil, http.StatusBadRequest)
}

func TestClientsAndAssignments(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("authenticated")

	missing := s.doJSON(http.MethodPost, "/api/clients", tok, map[string]any{
		"name": "John Doe", "type": "patient",
	}, http.StatusBadRequest)
	assert.Contains(t, missing["message"], "patient_id")

	client := s.doJSON(http.MethodPost, "/api/clients", tok, map[string]any{
		"name": "ICU", "type": "department", "department_id": "DEP-1",
	}, http.StatusCreated)
	clientID := client["id"].(string)

	productID := s.createProduct(tok, "Gauze", 30, 5)

	a := s.doJSON(http.MethodPost, "/api/assignments", tok, map[string]any{
		"product_id": productID, "client_id": clientID, "quantity": 5,
	}, http.StatusCreated)
	assert.Equal(t, testUserName, a["assigned_by_name"])

	over := s.doJSON(http.MethodPost, "/api/assignments", tok, map[string]any{
		"product_id": productID, "client_id": clientID, "quantity": 500,
	}, http.StatusUnprocessableEntity)
	assert.Equal(t, "INSUFFICIENT_STOCK", over["code"])

	p := s.doJSON(http.MethodGet, "/api/products/"+productID, tok, nil, http.StatusOK)
	assert.EqualValues(t, 25, p["quantity"])

	status, raw, _ := s.do(http.MethodGet, "/api/assignments?client_id="+clientID, tok, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), a["id"].(string))

	s.doJSON(http.MethodGet, "/api/assignments?start_date=01-01-2025", tok, nil, http.StatusBadRequest)

	s.doJSON(http.MethodDelete, "/api/assignments/"+a["id"].(string), tok, nil, http.StatusNoContent)
	p = s.doJSON(http.MethodGet, "/api/products/"+productID, tok, nil, http.StatusOK)
	assert.EqualValues(t, 25, p["quantity"], "eliminar la asignación no devuelve stock")
}

func TestInvoiceLifecycle(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("authenticated")

	pharmacy := s.doJSON(http.MethodPost, "/api/pharmacies", tok, map[string]any{
		"name": "Central Pharmacy", "registration_number": "REG-1", "payment_terms": 30, "credit_limit": "1000",
	}, http.StatusCreated)
	pharmacyID := pharmacy["id"].(string)

	dup := s.doJSON(http.MethodPost, "/api/pharmacies", tok, map[string]any{
		"name": "Other", "registration_number": "REG-1",
	}, http.StatusConflict)
	assert.Equal(t, "DUPLICATE", dup["code"])

	productID := s.createProduct(tok, "Amoxicillin", 50, 5)

	inv := s.doJSON(http.MethodPost, "/api/invoices", tok, map[string]any{
		"pharmacy_id":         pharmacyID,
		"issue_date":          "2025-03-01",
		"discount_percentage": "10",
		"tax_percentage":      "10",
		"items": []map[string]any{
			{"product_id": productID, "quantity": 4, "unit_price": "5"},
		},
	}, http.StatusCreated)
	invoiceID := inv["id"].(string)
	assert.Equal(t, "2025-03-31", inv["due_date"])
	assert.Equal(t, "draft", inv["status"])
	assert.Equal(t, "19.8", inv["total_amount"])
	assert.True(t, strings.HasPrefix(inv["invoice_number"].(string), "INV"))

	paid := s.doJSON(http.MethodPost, "/api/invoices/"+invoiceID+"/payments", tok, map[string]any{
		"amount": "5", "method": "cash", "payment_date": "2025-03-05",
	}, http.StatusCreated)
	assert.Equal(t, "partial", paid["invoice"].(map[string]any)["status"])

	s.doJSON(http.MethodPost, "/api/invoices/"+invoiceID+"/payments", tok, map[string]any{
		"amount": "5", "method": "bitcoin",
	}, http.StatusBadRequest)

	status, raw, _ := s.do(http.MethodGet, "/api/invoices/"+invoiceID+"/payments", tok, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"method":"cash"`)

	status, raw, resp := s.do(http.MethodGet, "/api/invoices/"+invoiceID+"/pdf", tok, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	s.doJSON(http.MethodPatch, "/api/invoices/"+invoiceID+"/status", tok, map[string]any{"status": "unknown"}, http.StatusBadRequest)

	// Vencida desde 2025-03-31: el barrido la marca overdue (solo admin).
	s.doJSON(http.MethodPost, "/api/invoices/mark-overdue", tok, nil, http.StatusForbidden)
	swept := s.doJSON(http.MethodPost, "/api/invoices/mark-overdue", s.token("admin"), nil, http.StatusOK)
	assert.EqualValues(t, 1, swept["updated"])

	got := s.doJSON(http.MethodGet, "/api/invoices/"+invoiceID, tok, nil, http.StatusOK)
	assert.Equal(t, "overdue", got["status"])

	cancelled := s.doJSON(http.MethodPatch, "/api/invoices/"+invoiceID+"/status", tok, map[string]any{"status": "cancelled"}, http.StatusOK)
	assert.Equal(t, "cancelled", cancelled["status"])
	s.doJSON(http.MethodPost, "/api/invoices/"+invoiceID+"/items", tok, map[string]any{
		"product_id": productID, "quantity": 1,
	}, http.StatusConflict)
}

func TestReportsDashboardAndActivity(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("authenticated")
	s.createProduct(tok, "Saline", 3, 10)

	report := s.doJSON(http.MethodGet, "/api/reports/inventory", tok, nil, http.StatusOK)
	assert.Equal(t, "Inventory Report", report["title"])

	s.doJSON(http.MethodGet, "/api/reports/sales", tok, nil, http.StatusBadRequest)

	status, raw, resp := s.do(http.MethodGet, "/api/reports/inventory/export?format=xlsx", tok, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")), "xlsx es un zip")

	s.doJSON(http.MethodGet, "/api/reports/inventory/export?format=csv", tok, nil, http.StatusBadRequest)

	summary := s.doJSON(http.MethodGet, "/api/dashboard/summary", tok, nil, http.StatusOK)
	assert.EqualValues(t, 1, summary["total_products"])
	assert.EqualValues(t, 1, summary["low_stock_items"])

	status, raw, _ = s.do(http.MethodGet, "/api/activity?entity_type=product", tok, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), testUserName)
}
