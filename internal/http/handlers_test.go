package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/loader"
	"github.com/fjod/go_storefront/internal/receipt"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type StorefrontMock struct {
	loadErr  error
	status   domain.CheckoutStatus
	items    []domain.Item
	summary  domain.CartSummary
	result   *checkout.Result
	err      error
	lastCode int64
	lastQty  int
	query    string
}

func (m *StorefrontMock) Search(query string) ([]domain.Item, error) {
	m.query = query
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *StorefrontMock) Item(code int64) (domain.Item, error) {
	if m.err != nil {
		return domain.Item{}, m.err
	}
	for _, item := range m.items {
		if item.Code == code {
			return item, nil
		}
	}
	return domain.Item{}, catalog.ErrItemNotFound
}

func (m *StorefrontMock) AddToCart(code int64, quantity int) (domain.CartSummary, error) {
	m.lastCode = code
	m.lastQty = quantity
	if m.err != nil {
		return domain.CartSummary{}, m.err
	}
	return m.summary, nil
}

func (m *StorefrontMock) Cart() domain.CartSummary {
	return m.summary
}

func (m *StorefrontMock) Checkout(context.Context) (*checkout.Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *StorefrontMock) CatalogError() error {
	return m.loadErr
}

func (m *StorefrontMock) CheckoutStatus() domain.CheckoutStatus {
	if m.status == "" {
		return domain.CheckoutStatusIdle
	}
	return m.status
}

var testItem = domain.Item{
	Code:      7,
	Brand:     "Ford",
	Model:     "Ranger",
	Category:  "Pickup",
	Type:      "🚙 Pickup",
	ImageRef:  "ranger.png",
	SalePrice: decimal.NewFromInt(35000),
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return response
}

func TestCatalogList_Success(t *testing.T) {
	mock := &StorefrontMock{items: []domain.Item{testItem}}
	handler := NewCatalogHandler(mock, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/catalog?q=ford", nil)

	handler.List(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.query != "ford" {
		t.Errorf("Expected query 'ford', got %q", mock.query)
	}

	var response ItemsResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Count != 1 || len(response.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(response.Items))
	}
	if response.Items[0].Title != "Ford Ranger" {
		t.Errorf("Expected title 'Ford Ranger', got %q", response.Items[0].Title)
	}
	if response.Items[0].Type != "Pickup" {
		t.Errorf("Expected display type 'Pickup', got %q", response.Items[0].Type)
	}
	if !response.Items[0].SalePrice.Equal(decimal.NewFromInt(35000)) {
		t.Errorf("Expected sale price 35000, got %s", response.Items[0].SalePrice)
	}
}

func TestCatalogList_LoadFailed(t *testing.T) {
	mock := &StorefrontMock{err: &loader.LoadError{Source: "file:missing.json", Err: loader.ErrSourceUnavailable}}
	handler := NewCatalogHandler(mock, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/catalog", nil)

	handler.List(recorder, request)

	if recorder.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status code %d, got %d", http.StatusServiceUnavailable, recorder.Code)
	}
	response := decodeError(t, recorder)
	if response.Code != "catalog_unavailable" {
		t.Errorf("Expected error code 'catalog_unavailable', got %s", response.Code)
	}
	if response.Details != "file:missing.json" {
		t.Errorf("Expected details 'file:missing.json', got %s", response.Details)
	}
}

func TestCatalogGet_NotFound(t *testing.T) {
	router := NewRouter(&StorefrontMock{items: []domain.Item{testItem}}, receipt.NewArchive(), RouterConfig{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/v1/catalog/99", nil))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
	if response := decodeError(t, recorder); response.Code != "not_found" {
		t.Errorf("Expected error code 'not_found', got %s", response.Code)
	}
}

func TestCatalogGet_InvalidCode(t *testing.T) {
	router := NewRouter(&StorefrontMock{}, receipt.NewArchive(), RouterConfig{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/v1/catalog/abc", nil))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestCatalogGet_Success(t *testing.T) {
	router := NewRouter(&StorefrontMock{items: []domain.Item{testItem}}, receipt.NewArchive(), RouterConfig{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/v1/catalog/7", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	var response ItemResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Code != 7 {
		t.Errorf("Expected code 7, got %d", response.Code)
	}
}

func TestAddItem_Success(t *testing.T) {
	entry := domain.NewCartEntry(testItem, 2)
	mock := &StorefrontMock{summary: domain.Summarize([]domain.CartEntry{entry})}
	handler := NewCartHandler(mock, nil)

	body, _ := json.Marshal(AddItemRequestDTO{Code: 7, Quantity: 2})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body))

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}
	if mock.lastCode != 7 || mock.lastQty != 2 {
		t.Errorf("Expected AddToCart(7, 2), got AddToCart(%d, %d)", mock.lastCode, mock.lastQty)
	}

	var response CartResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.TotalQuantity != 2 {
		t.Errorf("Expected total quantity 2, got %d", response.TotalQuantity)
	}
	if !response.TotalPrice.Equal(decimal.NewFromInt(70000)) {
		t.Errorf("Expected total price 70000, got %s", response.TotalPrice)
	}
	if len(response.Entries) != 1 || !response.Entries[0].Subtotal.Equal(decimal.NewFromInt(70000)) {
		t.Errorf("Expected one entry with subtotal 70000, got %+v", response.Entries)
	}
}

func TestAddItem_InvalidJSON(t *testing.T) {
	handler := NewCartHandler(&StorefrontMock{}, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewBufferString("{invalid"))

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if response := decodeError(t, recorder); response.Code != "invalid_request" {
		t.Errorf("Expected error code 'invalid_request', got %s", response.Code)
	}
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	mock := &StorefrontMock{err: &cart.ValidationError{Code: 7, Quantity: -3}}
	handler := NewCartHandler(mock, nil)

	body, _ := json.Marshal(AddItemRequestDTO{Code: 7, Quantity: -3})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body))

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if response := decodeError(t, recorder); response.Code != "invalid_quantity" {
		t.Errorf("Expected error code 'invalid_quantity', got %s", response.Code)
	}
}

func TestGetCart_Empty(t *testing.T) {
	handler := NewCartHandler(&StorefrontMock{summary: domain.Summarize(nil)}, nil)

	recorder := httptest.NewRecorder()
	handler.GetCart(recorder, httptest.NewRequest("GET", "/api/v1/cart", nil))

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	var response CartResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Entries) != 0 || response.TotalQuantity != 0 || !response.TotalPrice.IsZero() {
		t.Errorf("Expected empty cart, got %+v", response)
	}
}

func TestCheckout_Success(t *testing.T) {
	at := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	summary := domain.Summarize([]domain.CartEntry{domain.NewCartEntry(testItem, 1)})
	mock := &StorefrontMock{result: &checkout.Result{
		Receipt:      domain.NewReceipt("chk-1", summary, at),
		Confirmation: checkout.PaymentConfirmation,
	}}
	handler := NewCheckoutHandler(mock, 5*time.Second, nil)

	recorder := httptest.NewRecorder()
	handler.Checkout(recorder, httptest.NewRequest("POST", "/api/v1/checkout", nil))

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response CheckoutResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.CheckoutID != "chk-1" {
		t.Errorf("Expected checkout_id 'chk-1', got %s", response.CheckoutID)
	}
	if response.ReceiptName != "receipt_2024-05-17" {
		t.Errorf("Expected receipt_name 'receipt_2024-05-17', got %s", response.ReceiptName)
	}
	if response.ReceiptURL != "/api/v1/receipts/receipt_2024-05-17.pdf" {
		t.Errorf("Unexpected receipt_url %s", response.ReceiptURL)
	}
	if response.Message != checkout.PaymentConfirmation {
		t.Errorf("Expected message %q, got %q", checkout.PaymentConfirmation, response.Message)
	}
}

func TestCheckout_FormatterFailed(t *testing.T) {
	mock := &StorefrontMock{result: &checkout.Result{
		Receipt:      domain.NewReceipt("chk-2", domain.Summarize(nil), time.Now()),
		FormatErr:    errors.New("disk full"),
		Confirmation: checkout.PaymentConfirmation,
	}}
	handler := NewCheckoutHandler(mock, 5*time.Second, nil)

	recorder := httptest.NewRecorder()
	handler.Checkout(recorder, httptest.NewRequest("POST", "/api/v1/checkout", nil))

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}
	var response CheckoutResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.ReceiptURL != "" || response.ReceiptError != "disk full" {
		t.Errorf("Expected receipt error without url, got %+v", response)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	handler := NewCheckoutHandler(&StorefrontMock{err: checkout.ErrEmptyCart}, 5*time.Second, nil)

	recorder := httptest.NewRecorder()
	handler.Checkout(recorder, httptest.NewRequest("POST", "/api/v1/checkout", nil))

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status code %d, got %d", http.StatusUnprocessableEntity, recorder.Code)
	}
	if response := decodeError(t, recorder); response.Code != "empty_cart" {
		t.Errorf("Expected error code 'empty_cart', got %s", response.Code)
	}
}

func TestCheckout_InternalError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := NewCheckoutHandler(&StorefrontMock{err: errors.New("boom")}, 5*time.Second, zap.New(core))

	recorder := httptest.NewRecorder()
	handler.Checkout(recorder, httptest.NewRequest("POST", "/api/v1/checkout", nil))

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("Expected status code %d, got %d", http.StatusInternalServerError, recorder.Code)
	}
	if response := decodeError(t, recorder); response.Error != "internal server error" {
		t.Errorf("Expected generic message, got %s", response.Error)
	}
	if n := logs.FilterMessage("unhandled service error").Len(); n != 1 {
		t.Errorf("Expected the error on the handler logger, got %d entries", n)
	}
}

func TestReceiptDownload(t *testing.T) {
	archive := receipt.NewArchive()
	archive.Put("receipt_2024-05-17.pdf", []byte("%PDF-1.3"))
	router := NewRouter(&StorefrontMock{}, archive, RouterConfig{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/v1/receipts/receipt_2024-05-17.pdf", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected Content-Type application/pdf, got %s", ct)
	}
	if recorder.Body.String() != "%PDF-1.3" {
		t.Errorf("Unexpected body %q", recorder.Body.String())
	}

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/v1/receipts/missing.pdf", nil))
	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestRouter_HealthAndRequestID(t *testing.T) {
	router := NewRouter(&StorefrontMock{}, receipt.NewArchive(), RouterConfig{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/health", nil)
	request.Header.Set("X-Request-ID", "req-42")
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if id := recorder.Header().Get("X-Request-ID"); id != "req-42" {
		t.Errorf("Expected X-Request-ID 'req-42', got %s", id)
	}

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))
	if recorder.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a generated X-Request-ID")
	}
}

func TestReceiptList(t *testing.T) {
	archive := receipt.NewArchive()
	archive.Put("receipt_2024-05-18.pdf", []byte("%PDF-1.3"))
	archive.Put("receipt_2024-05-17.pdf", []byte("%PDF-1.3"))
	router := NewRouter(&StorefrontMock{}, archive, RouterConfig{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/v1/receipts", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	var response ReceiptsResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Receipts) != 2 {
		t.Fatalf("Expected 2 receipts, got %d", len(response.Receipts))
	}
	if response.Receipts[0].Name != "receipt_2024-05-17.pdf" {
		t.Errorf("Expected receipts sorted by name, got %s first", response.Receipts[0].Name)
	}
	if response.Receipts[0].URL != "/api/v1/receipts/receipt_2024-05-17.pdf" {
		t.Errorf("Unexpected receipt url %s", response.Receipts[0].URL)
	}
}

func TestHealth_CatalogUnavailable(t *testing.T) {
	mock := &StorefrontMock{loadErr: &loader.LoadError{Source: "file:missing.json", Err: loader.ErrSourceUnavailable}}
	router := NewRouter(mock, receipt.NewArchive(), RouterConfig{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	var response HealthResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Status != "degraded" || response.Catalog != "unavailable" {
		t.Errorf("Expected degraded/unavailable, got %s/%s", response.Status, response.Catalog)
	}
	if response.CatalogError == "" {
		t.Error("Expected catalog_error to be set")
	}
	if response.CheckoutStatus != "IDLE" {
		t.Errorf("Expected checkout_status IDLE, got %s", response.CheckoutStatus)
	}
}
