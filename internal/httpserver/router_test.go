package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"storefront/internal/checkout"
	"storefront/internal/domain"
	catalogsvc "storefront/internal/service/catalog"
	ordersvc "storefront/internal/service/order"
)

type stubOrderService struct {
	order *domain.Order
	err   error
	last  ordersvc.SubmitInput
}

func (s *stubOrderService) Submit(_ context.Context, in ordersvc.SubmitInput) (*domain.Order, error) {
	s.last = in
	return s.order, s.err
}

type stubCatalogService struct {
	item       *domain.CatalogItem
	items      []domain.CatalogItem
	deleteRes  *catalogsvc.DeleteResult
	err        error
	lastAdd    catalogsvc.AddInput
	lastUpdate catalogsvc.UpdateInput
	lastDelete catalogsvc.DeleteInput
	lastStore  string
}

func (s *stubCatalogService) Add(_ context.Context, in catalogsvc.AddInput) (*domain.CatalogItem, error) {
	s.lastAdd = in
	return s.item, s.err
}

func (s *stubCatalogService) Update(_ context.Context, in catalogsvc.UpdateInput) (*domain.CatalogItem, error) {
	s.lastUpdate = in
	return s.item, s.err
}

func (s *stubCatalogService) Delete(_ context.Context, in catalogsvc.DeleteInput) (*catalogsvc.DeleteResult, error) {
	s.lastDelete = in
	return s.deleteRes, s.err
}

func (s *stubCatalogService) List(_ context.Context, storeID string) ([]domain.CatalogItem, error) {
	s.lastStore = storeID
	return s.items, s.err
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestRouter(t *testing.T, orders *stubOrderService, catalog *stubCatalogService, opts Options) *gin.Engine {
	t.Helper()
	router, err := buildRouter(logDiscard(), stubPinger{}, Deps{OrderSvc: orders, CatalogSvc: catalog}, opts)
	if err != nil {
		t.Fatalf("buildRouter: %v", err)
	}
	gin.SetMode(gin.TestMode)
	return router
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

const orderBody = `{"email":"john@gmail.com","firstName":"John","lastName":"Doe","address":"1 Mall Road","city":"Lahore","phone":"+923001234567","cartItems":[{"title":"Shirt","image":"x","price":10,"quantity":2}],"total":20,"paymentMethod":"cod","date":"2026-03-01T10:00:00Z"}`

func TestSubmitOrder_Success(t *testing.T) {
	orders := &stubOrderService{order: &domain.Order{ID: "ord-1"}}
	router := newTestRouter(t, orders, &stubCatalogService{}, Options{})

	rec := doJSON(router, http.MethodPost, "/api/submit-order", orderBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["orderID"] != "ord-1" {
		t.Fatalf("unexpected body %v", body)
	}
	if orders.last.CartItems[0].Quantity != 2 || orders.last.PaymentMethod != domain.PaymentCashOnDelivery {
		t.Fatalf("unexpected decoded input %+v", orders.last)
	}
}

func TestSubmitOrder_ValidationFailure(t *testing.T) {
	orders := &stubOrderService{err: &checkout.ValidationError{Field: "email", Message: "Only Gmail, Hotmail or Yahoo emails are allowed."}}
	router := newTestRouter(t, orders, &stubCatalogService{}, Options{})

	rec := doJSON(router, http.MethodPost, "/api/submit-order", orderBody)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false || body["message"] != "Only Gmail, Hotmail or Yahoo emails are allowed." {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestSubmitOrder_StorageFailureHidesDetail(t *testing.T) {
	orders := &stubOrderService{err: errors.New("connection refused")}
	router := newTestRouter(t, orders, &stubCatalogService{}, Options{})

	rec := doJSON(router, http.MethodPost, "/api/submit-order", orderBody)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"success":false}` {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestSubmitOrder_MalformedJSON(t *testing.T) {
	router := newTestRouter(t, &stubOrderService{}, &stubCatalogService{}, Options{})
	rec := doJSON(router, http.MethodPost, "/api/submit-order", `{"cartItems": "nope"`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBodyLimit(t *testing.T) {
	router := newTestRouter(t, &stubOrderService{}, &stubCatalogService{}, Options{MaxBodyBytes: 64})
	big := fmt.Sprintf(`{"storeID":"s","itemName":"%s"}`, strings.Repeat("a", 200))
	rec := doJSON(router, http.MethodPost, "/api/add-item", big)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestAddItem_Created(t *testing.T) {
	catalog := &stubCatalogService{item: &domain.CatalogItem{ID: "i1", StoreID: "s", ItemName: "Mug", ItemImages: []string{}}}
	router := newTestRouter(t, &stubOrderService{}, catalog, Options{})

	rec := doJSON(router, http.MethodPost, "/api/add-item", `{"storeID":"s","itemName":"Mug","itemPrice":12.5,"quantity":3,"itemImages":[]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["_id"] != "i1" || body["itemName"] != "Mug" {
		t.Fatalf("unexpected body %v", body)
	}
	if catalog.lastAdd.ItemPrice != 12.5 || catalog.lastAdd.Quantity != 3 {
		t.Fatalf("unexpected decoded input %+v", catalog.lastAdd)
	}
}

func TestAddItem_InvalidInput(t *testing.T) {
	catalog := &stubCatalogService{err: fmt.Errorf("%w: item name required", domain.ErrInvalidInput)}
	router := newTestRouter(t, &stubOrderService{}, catalog, Options{})

	rec := doJSON(router, http.MethodPost, "/api/add-item", `{"storeID":"s"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "invalid input: item name required" {
		t.Fatalf("unexpected message %v", msg)
	}
}

func TestUpdateItem_NotFound(t *testing.T) {
	catalog := &stubCatalogService{err: domain.ErrNotFound}
	router := newTestRouter(t, &stubOrderService{}, catalog, Options{})

	rec := doJSON(router, http.MethodPut, "/api/update-item", `{"storeID":"s","itemID":"missing","updatedItemName":"Mug"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if catalog.lastUpdate.ItemID != "missing" || catalog.lastUpdate.UpdatedItemName != "Mug" {
		t.Fatalf("unexpected decoded input %+v", catalog.lastUpdate)
	}
}

func TestUpdateItem_StorageError(t *testing.T) {
	catalog := &stubCatalogService{err: errors.New("boom")}
	router := newTestRouter(t, &stubOrderService{}, catalog, Options{})

	rec := doJSON(router, http.MethodPut, "/api/update-item", `{"storeID":"s","itemID":"i1","updatedItemName":"Mug"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Fatalf("internal error leaked: %s", rec.Body.String())
	}
}

func TestDeleteItems_ReportsNotFound(t *testing.T) {
	catalog := &stubCatalogService{deleteRes: &catalogsvc.DeleteResult{Deleted: []string{"a"}, NotFound: []string{"zz"}}}
	router := newTestRouter(t, &stubOrderService{}, catalog, Options{})

	rec := doJSON(router, http.MethodDelete, "/api/delete-item", `{"storeID":"s","itemIDs":["a","zz"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	notFound, _ := body["notFound"].([]interface{})
	if len(notFound) != 1 || notFound[0] != "zz" {
		t.Fatalf("unexpected body %v", body)
	}
	if len(catalog.lastDelete.ItemIDs) != 2 {
		t.Fatalf("unexpected decoded input %+v", catalog.lastDelete)
	}
}

func TestViewItems_EmptyStore(t *testing.T) {
	catalog := &stubCatalogService{items: []domain.CatalogItem{}}
	router := newTestRouter(t, &stubOrderService{}, catalog, Options{})

	rec := doJSON(router, http.MethodGet, "/api/view-items?storeID=store-9", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"items":[]}` {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if catalog.lastStore != "store-9" {
		t.Fatalf("unexpected store %q", catalog.lastStore)
	}
}

func TestViewItems_MissingStore(t *testing.T) {
	catalog := &stubCatalogService{err: fmt.Errorf("%w: storeID required", domain.ErrInvalidInput)}
	router := newTestRouter(t, &stubOrderService{}, catalog, Options{})

	rec := doJSON(router, http.MethodGet, "/api/view-items", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExportItems_Workbook(t *testing.T) {
	created := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	catalog := &stubCatalogService{items: []domain.CatalogItem{
		{ID: "i1", ItemName: "Mug", ItemPrice: 12.5, Quantity: 4, ItemImages: []string{"a", "b"}, CreatedAt: created, UpdatedAt: created},
	}}
	router := newTestRouter(t, &stubOrderService{}, catalog, Options{})

	rec := doJSON(router, http.MethodGet, "/api/export-items?storeID=my/store", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != xlsxContentType {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), `catalog-my-store.xlsx`) {
		t.Fatalf("unexpected disposition %q", rec.Header().Get("Content-Disposition"))
	}

	file, err := xlsx.OpenBinary(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	rows := file.Sheets[0].Rows
	if len(rows) < 2 {
		t.Fatalf("expected header and one item row, got %d rows", len(rows))
	}
	if rows[0].Cells[0].String() != "ID" || rows[1].Cells[1].String() != "Mug" || rows[1].Cells[7].String() != "2" {
		t.Fatalf("unexpected row contents")
	}
}

func TestReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, tc := range []struct {
		name   string
		pinger Pinger
		want   int
	}{
		{"ready", stubPinger{}, http.StatusOK},
		{"unreachable", stubPinger{err: errors.New("down")}, http.StatusServiceUnavailable},
		{"not configured", nil, http.StatusServiceUnavailable},
	} {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/readyz", readyHandler(tc.pinger))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", bytes.NewReader(nil)))
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestBuildRouter_RequiresServices(t *testing.T) {
	if _, err := buildRouter(logDiscard(), nil, Deps{}, Options{}); err == nil {
		t.Fatalf("expected error without services")
	}
}
