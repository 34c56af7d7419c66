package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"inspection-export/internal/domain"
)

func newExportRouter(service domain.ExportService) http.Handler {
	handler := NewExportHandler(service, 1000, NewMockHandlerLogger())
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/exports", handler.CreateExport).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/exports/{id}", handler.GetState).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/exports/{id}", handler.DiscardExport).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/exports/{id}/operations", handler.ApplyOperation).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/exports/{id}/line-height", handler.GetLineHeight).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/exports/{id}/footer", handler.AddFooter).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/exports/{id}/finalize", handler.FinalizeExport).Methods(http.MethodPost)
	return router
}

func TestExportHandler_CreateExport(t *testing.T) {
	service := NewMockExportService()
	router := newExportRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exports", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["id"] != "doc-1" {
		t.Fatalf("expected handle doc-1, got %s", resp["id"])
	}
}

func TestExportHandler_ApplyOperation(t *testing.T) {
	service := NewMockExportService()
	router := newExportRouter(service)
	service.Create()

	body := strings.NewReader(`{"type":"text","text":"hello","size":12,"font":"arial","alignment":"left","color":"black"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exports/doc-1/operations", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if len(service.ops["doc-1"]) != 1 {
		t.Fatalf("expected one recorded op, got %d", len(service.ops["doc-1"]))
	}
	if service.ops["doc-1"][0].Kind != domain.OpText {
		t.Fatalf("expected text op, got %s", service.ops["doc-1"][0].Kind)
	}
}

func TestExportHandler_ApplyOperation_UnknownHandle(t *testing.T) {
	service := NewMockExportService()
	router := newExportRouter(service)

	body := strings.NewReader(`{"type":"page_break"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exports/ghost/operations", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rr.Code)
	}
}

func TestExportHandler_ApplyOperation_InvalidBody(t *testing.T) {
	service := NewMockExportService()
	router := newExportRouter(service)
	service.Create()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exports/doc-1/operations", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestExportHandler_GetLineHeight(t *testing.T) {
	service := NewMockExportService()
	router := newExportRouter(service)
	service.Create()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/doc-1/line-height", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var resp map[string]float64
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["line_height"] != 5.08 {
		t.Fatalf("expected line height 5.08, got %v", resp["line_height"])
	}
}

func TestExportHandler_AddFooter(t *testing.T) {
	service := NewMockExportService()
	router := newExportRouter(service)
	service.Create()

	body := strings.NewReader(`{"text":"Inspection Report","left_font":"arial","left_size":9,"left_color":"black","right_font":"arial","right_size":9,"right_color":"gray","horizontal_margin":12}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exports/doc-1/footer", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if service.footers["doc-1"].Text != "Inspection Report" {
		t.Fatalf("unexpected footer spec %+v", service.footers["doc-1"])
	}
}

func TestExportHandler_FinalizeExport_StreamsDownload(t *testing.T) {
	service := NewMockExportService()
	router := newExportRouter(service)
	service.Create()

	body := strings.NewReader(`{"filename":"report.pdf"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exports/doc-1/finalize", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `attachment; filename="out.pdf"` {
		t.Fatalf("unexpected disposition %s", cd)
	}
	if rr.Body.String() != "%PDF-mock" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestExportHandler_FinalizeExport_MissingFilename(t *testing.T) {
	service := NewMockExportService()
	router := newExportRouter(service)
	service.Create()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exports/doc-1/finalize", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestExportHandler_DiscardExport(t *testing.T) {
	service := NewMockExportService()
	router := newExportRouter(service)
	service.Create()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/exports/doc-1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if _, ok := service.ops["doc-1"]; ok {
		t.Fatal("expected handle to be discarded")
	}
}
