package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"expensely/internal/services"
)

// --- mock export service ---

type mockExportService struct {
	exportCSVFn func(userID uint, r services.DateRange) ([]byte, error)
	exportPDFFn func(userID uint, r services.DateRange) ([]byte, error)
}

func (m *mockExportService) ExportCSV(userID uint, r services.DateRange) ([]byte, error) {
	if m.exportCSVFn != nil {
		return m.exportCSVFn(userID, r)
	}
	return []byte("type,date,category,description,amount\n"), nil
}

func (m *mockExportService) ExportPDF(userID uint, r services.DateRange) ([]byte, error) {
	if m.exportPDFFn != nil {
		return m.exportPDFFn(userID, r)
	}
	return []byte("%PDF-1.4"), nil
}

// verify interface compliance
var _ services.ExportServicer = (*mockExportService)(nil)

func setupExportRouter(handler *ExportHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/export/csv", handler.ExportCSV)
	auth.GET("/export/pdf", handler.ExportPDF)
	return r
}

func TestExportHandler_ExportCSV(t *testing.T) {
	t.Run("returns attachment", func(t *testing.T) {
		handler := NewExportHandler(&mockExportService{})
		r := setupExportRouter(handler)

		rec := doRequest(r, "GET", "/export/csv", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("expected Content-Type text/csv, got %q", ct)
		}
		cd := rec.Header().Get("Content-Disposition")
		if !strings.Contains(cd, "attachment") || !strings.Contains(cd, ".csv") {
			t.Errorf("expected CSV attachment disposition, got %q", cd)
		}
	})

	t.Run("defaults range to current month", func(t *testing.T) {
		var got services.DateRange
		exportSvc := &mockExportService{
			exportCSVFn: func(_ uint, r services.DateRange) ([]byte, error) {
				got = r
				return []byte{}, nil
			},
		}
		handler := NewExportHandler(exportSvc)
		r := setupExportRouter(handler)

		rec := doRequest(r, "GET", "/export/csv", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.From == nil || got.To == nil {
			t.Fatal("expected both bounds defaulted")
		}
		if got.From.Day() != 1 {
			t.Errorf("expected default from on the first of the month, got %v", got.From)
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		handler := NewExportHandler(&mockExportService{})
		r := setupExportRouter(handler)

		rec := doRequest(r, "GET", "/export/csv?from=bogus", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExportHandler_ExportPDF(t *testing.T) {
	handler := NewExportHandler(&mockExportService{})
	r := setupExportRouter(handler)

	rec := doRequest(r, "GET", "/export/pdf?from=2024-01-01&to=2024-03-31", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected Content-Type application/pdf, got %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Errorf("expected PDF body, got %q", rec.Body.String())
	}
}
