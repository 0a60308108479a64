package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/dedeepya55/SmartStockAIBackend/internal/application/analytics"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/inventory"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/ports"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/usecase"
	domainanalytics "github.com/dedeepya55/SmartStockAIBackend/internal/domain/analytics"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	domaininv "github.com/dedeepya55/SmartStockAIBackend/internal/domain/inventory"
	"github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/export"
	"github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/idempotency"
	"github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/memory"
	"github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/pdf"
	apphttp "github.com/dedeepya55/SmartStockAIBackend/internal/interfaces/http"
	"github.com/dedeepya55/SmartStockAIBackend/pkg/logger"
	pkgjwt "github.com/dedeepya55/SmartStockAIBackend/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID  = "00000000-0000-0000-0000-0000000000a1"
	workerID = "00000000-0000-0000-0000-0000000000b2"
)

type fakeInspector struct {
	verdict *entity.InspectionVerdict
}

func (f *fakeInspector) Inspect(context.Context, string, []byte) (*entity.InspectionVerdict, error) {
	return f.verdict, nil
}

type testAPI struct {
	app       *fiber.App
	inspector *fakeInspector
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	store.AddUser(&entity.User{ID: adminID, Email: "admin@example.com", Role: entity.RoleAdmin})
	store.AddUser(&entity.User{ID: workerID, Email: "worker@example.com", Role: entity.RoleWorker})

	products := memory.NewProductRepository(store)
	notifications := memory.NewNotificationRepository(store)
	users := memory.NewUserRepository(store)
	inspector := &fakeInspector{verdict: &entity.InspectionVerdict{Status: entity.InspectionOK}}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(products, 0),
		LedgerUC: inventory.NewLedgerUseCase(
			memory.NewTxRunner(store),
			domaininv.NewLedger(domaininv.Policy{}),
			ports.NopLedgerMetrics{},
			time.UTC,
		),
		AnalyticsUC: appanalytics.NewAnalyticsUseCase(
			products,
			domainanalytics.NewAggregator(time.UTC),
			pdf.NewMarotoReportGenerator(),
			export.NewMovementExporter(),
		),
		QualityUC:      usecase.NewQualityCheckUseCase(inspector, users, notifications, time.Second),
		AssistantUC:    usecase.NewAssistantUseCase(products, notifications),
		NotificationUC: usecase.NewNotificationUseCase(notifications),
		UserUC:         usecase.NewUserUseCase(users),
		Idempotency:    idempotency.NewMemoryStore(),
		IdempotencyTTL: time.Minute,
		JWTSecret:      testJWTSecret,
		Log:            logger.Nop(),
	})
	return &testAPI{app: app, inspector: inspector}
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (a *testAPI) do(t *testing.T, method, path, auth string, body interface{}, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (a *testAPI) createProduct(t *testing.T, sku string) {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/products", bearer(t, adminID, "admin"), dto.CreateProductRequest{
		SKU: sku, Title: "Tornillo", Category: "Ferretería", Warehouse: "Bodega A", MinStock: 2, MaxStock: 50,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CrearYObtenerSinDistinguirMayusculas(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "AB-12")

	resp := api.do(t, http.MethodGet, "/api/products/sku/ab-12", bearer(t, workerID, "worker"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "AB-12", p.SKU)
	assert.Equal(t, "OUT_OF_STOCK", p.Status)
}

func TestProducts_SKUDuplicado_Retorna409(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "AB-12")

	resp := api.do(t, http.MethodPost, "/api/products", bearer(t, adminID, "admin"), dto.CreateProductRequest{SKU: "ab-12", Title: "Otro"})
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_SKU", body.Code)
}

func TestProducts_CrearSinTitulo_Retorna400ConCampo(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodPost, "/api/products", bearer(t, adminID, "admin"), dto.CreateProductRequest{SKU: "X-1"})
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "title", body.Field)
}

func TestProducts_WorkerNoPuedeCrear(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodPost, "/api/products", bearer(t, workerID, "worker"), dto.CreateProductRequest{SKU: "X-1", Title: "X"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProducts_SKUInexistente_Retorna404(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodGet, "/api/products/sku/NOPE", bearer(t, workerID, "worker"), nil)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestProducts_ListaPaginada(t *testing.T) {
	api := newTestAPI(t)
	for _, sku := range []string{"A-1", "A-2", "A-3", "A-4", "A-5", "A-6", "A-7"} {
		api.createProduct(t, sku)
	}
	resp := api.do(t, http.MethodGet, "/api/products?page=2", bearer(t, workerID, "worker"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ProductListResponse](t, resp)
	assert.Equal(t, 7, list.Total)
	assert.Equal(t, 2, list.TotalPages)
	assert.Equal(t, 2, list.CurrentPage)
	assert.Len(t, list.Items, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_EntradaSalidaYStockInsuficiente(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "SKU-1")
	admin := bearer(t, adminID, "admin")

	resp := api.do(t, http.MethodPost, "/api/products/sku/SKU-1/movements", admin, dto.MovementRequest{Direction: "in", Date: "2024-01-05", Qty: 10})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	p := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, 10, p.Quantity)
	require.Len(t, p.InMovements, 1)

	resp = api.do(t, http.MethodPost, "/api/products/sku/SKU-1/movements", admin, dto.MovementRequest{Direction: "OUT", Date: "2024-02-01", Qty: 15})
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)

	resp = api.do(t, http.MethodPost, "/api/products/sku/SKU-1/movements", admin, dto.MovementRequest{Direction: "OUT", Qty: 0})
	body = decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_MOVEMENT", body.Code)

	resp = api.do(t, http.MethodGet, "/api/products/sku/SKU-1", admin, nil)
	p = decode[dto.ProductResponse](t, resp)
	assert.Equal(t, 10, p.Quantity, "los rechazos no alteran la cantidad")
	assert.Empty(t, p.OutMovements)
}

func TestLedger_IdempotencyKeyDuplicada_Retorna409(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "SKU-1")
	admin := bearer(t, adminID, "admin")

	in := dto.MovementRequest{Direction: "IN", Date: "2024-01-05", Qty: 4}
	resp := api.do(t, http.MethodPost, "/api/products/sku/SKU-1/movements", admin, in, apphttp.HeaderIdempotencyKey, "k-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodPost, "/api/products/sku/SKU-1/movements", admin, in, apphttp.HeaderIdempotencyKey, "k-1")
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_REQUEST", body.Code)

	resp = api.do(t, http.MethodGet, "/api/products/sku/SKU-1", admin, nil)
	p := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, 4, p.Quantity, "el reintento no se aplica dos veces")
}

func TestLedger_IdempotencyKeyLiberadaTrasFallo(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "SKU-1")
	admin := bearer(t, adminID, "admin")

	out := dto.MovementRequest{Direction: "OUT", Date: "2024-01-05", Qty: 1}
	resp := api.do(t, http.MethodPost, "/api/products/sku/SKU-1/movements", admin, out, apphttp.HeaderIdempotencyKey, "k-2")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodPut, "/api/products/sku/SKU-1/quantity", admin, map[string]int{"quantity": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodPost, "/api/products/sku/SKU-1/movements", admin, out, apphttp.HeaderIdempotencyKey, "k-2")
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "la clave de una petición fallida se puede reutilizar")
	resp.Body.Close()
}

func TestLedger_UpdateConMovimientos(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "SKU-1")
	admin := bearer(t, adminID, "admin")

	resp := api.do(t, http.MethodPut, "/api/products/sku/SKU-1", admin, map[string]interface{}{
		"title":    "Tornillo 3/8",
		"quantity": 5,
		"in_date":  "2024-03-01",
		"in_qty":   10,
		"out_date": "2024-03-02",
		"out_qty":  3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "Tornillo 3/8", p.Title)
	assert.Equal(t, 12, p.Quantity)
	assert.Len(t, p.InMovements, 1)
	assert.Len(t, p.OutMovements, 1)
}

func TestLedger_UpdateFallidoRevierteTodo(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "SKU-1")
	admin := bearer(t, adminID, "admin")

	resp := api.do(t, http.MethodPut, "/api/products/sku/SKU-1", admin, map[string]interface{}{
		"title":    "Cambiado",
		"in_date":  "2024-03-01",
		"in_qty":   2,
		"out_date": "2024-03-02",
		"out_qty":  5,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/api/products/sku/SKU-1", admin, nil)
	p := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "Tornillo", p.Title)
	assert.Equal(t, 0, p.Quantity)
	assert.Empty(t, p.InMovements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Analítica y exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestAnalytics_TendenciasYVendidas(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "SKU-1")
	admin := bearer(t, adminID, "admin")
	for _, m := range []dto.MovementRequest{
		{Direction: "IN", Date: "2024-01-05", Qty: 10},
		{Direction: "IN", Date: "2024-02-10", Qty: 5},
		{Direction: "OUT", Date: "2024-02-20", Qty: 3},
		{Direction: "OUT", Date: "2025-01-02", Qty: 2},
	} {
		resp := api.do(t, http.MethodPost, "/api/products/sku/SKU-1/movements", admin, m)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := api.do(t, http.MethodGet, "/api/products/sku/SKU-1/analytics?year=2024", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	a := decode[dto.InventoryAnalyticsDTO](t, resp)
	assert.Equal(t, 5, a.SoldQty)
	assert.Equal(t, []dto.YearTrendDTO{{Year: "2024", InQty: 15, OutQty: 3}, {Year: "2025", InQty: 0, OutQty: 2}}, a.YearlyTrend)
	assert.Equal(t, []dto.MonthTrendDTO{{Month: "Jan", InQty: 10}, {Month: "Feb", InQty: 5, OutQty: 3}}, a.MonthlyTrend)
}

func TestAnalytics_ExportCSVYReportePDF(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "SKU-1")
	admin := bearer(t, adminID, "admin")
	resp := api.do(t, http.MethodPost, "/api/products/sku/SKU-1/movements", admin, dto.MovementRequest{Direction: "IN", Date: "2024-01-05", Qty: 10})
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/api/products/sku/SKU-1/movements/export?format=csv", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "movements_SKU-1.csv")
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(raw), "IN,2024-01-05,10")

	resp = api.do(t, http.MethodGet, "/api/products/sku/SKU-1/analytics/report?year=2024", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Calidad, notificaciones y asistente
// ──────────────────────────────────────────────────────────────────────────────

func (a *testAPI) qualityCheck(t *testing.T, auth string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "caja.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("fake-jpeg"))
	require.NoError(t, mw.WriteField("sku", "SKU-1"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/quality-check", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", auth)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestQualityCheck_DefectoNotificaAAdmins(t *testing.T) {
	api := newTestAPI(t)
	api.inspector.verdict = &entity.InspectionVerdict{Status: entity.InspectionNotOK, Message: "Caja aplastada"}

	resp := api.qualityCheck(t, bearer(t, workerID, "worker"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.QualityCheckResponse](t, resp)
	assert.Equal(t, entity.InspectionNotOK, out.Status)
	assert.Equal(t, 1, out.Notified, "solo el admin recibe la alerta")

	admin := bearer(t, adminID, "admin")
	resp = api.do(t, http.MethodGet, "/api/notifications", admin, nil)
	list := decode[dto.NotificationListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Contains(t, list.Items[0].Message, "SKU-1")
	assert.Equal(t, entity.NotificationDefect, list.Items[0].Type)

	resp = api.do(t, http.MethodDelete, "/api/notifications/"+list.Items[0].ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodDelete, "/api/notifications/"+list.Items[0].ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestQualityCheck_SinImagen_Retorna400(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodPost, "/api/products/quality-check", bearer(t, workerID, "worker"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotifications_IDInvalido_Retorna400(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodDelete, "/api/notifications/no-es-uuid", bearer(t, adminID, "admin"), nil)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", body.Code)
}

func TestAssistant_StockBajo(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "SKU-1") // min_stock 2
	admin := bearer(t, adminID, "admin")
	resp := api.do(t, http.MethodPost, "/api/products/sku/SKU-1/movements", admin, dto.MovementRequest{Direction: "IN", Qty: 1})
	resp.Body.Close()

	resp = api.do(t, http.MethodPost, "/api/assistant/ask", admin, dto.AssistantRequest{Question: "¿Qué productos tienen stock bajo?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.AssistantResponse](t, resp)
	assert.Equal(t, usecase.IntentLowStock, out.Intent)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "SKU-1", out.Products[0].SKU)
}

func TestUsers_Me(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodGet, "/api/users/me", bearer(t, adminID, "admin"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	u := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "admin@example.com", u.Email)

	resp = api.do(t, http.MethodGet, "/api/users/me", bearer(t, "00000000-0000-0000-0000-00000000ffff", "worker"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rate limiting
// ──────────────────────────────────────────────────────────────────────────────

func TestRateLimiter_Retorna429(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.NewRateLimiter(0.001, 2).Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
		resp.Body.Close()
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
