package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocloud/autocloud-api/internal/dto"
)

type fakeTrashSrv struct {
	history    *dto.HistoryResponse
	historyErr error
	restore    *dto.RestoreResponse
	restoreErr error

	exportPayload []byte
	exportType    string
	exportErr     error
	lastExport    struct {
		email  string
		days   int
		format string
	}
}

func (f *fakeTrashSrv) History(_ context.Context, req dto.HistoryRequest) (*dto.HistoryResponse, error) {
	return f.history, f.historyErr
}

func (f *fakeTrashSrv) Restore(_ context.Context, req dto.RestoreRequest) (*dto.RestoreResponse, error) {
	return f.restore, f.restoreErr
}

func (f *fakeTrashSrv) Export(_ context.Context, ownerEmail string, filterDays int, format string) ([]byte, string, error) {
	f.lastExport.email = ownerEmail
	f.lastExport.days = filterDays
	f.lastExport.format = format
	return f.exportPayload, f.exportType, f.exportErr
}

func TestTrashHandlerHistory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTrashHandler(&fakeTrashSrv{
		history: &dto.HistoryResponse{History: []dto.HistoryItem{{FileID: "f1", Source: "Google Drive"}}},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/cleanup/history", strings.NewReader(`{"ownerEmail": "owner@example.com"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.History(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	history, ok := envelope.Data["history"].([]interface{})
	require.True(t, ok)
	assert.Len(t, history, 1)
}

func TestTrashHandlerHistoryRejectsBadEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTrashHandler(&fakeTrashSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/cleanup/history", strings.NewReader(`{"ownerEmail": "not-an-email"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.History(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrashHandlerRestore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTrashHandler(&fakeTrashSrv{
		restore: &dto.RestoreResponse{Restored: true, Message: "file restored"},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/cleanup/restore", strings.NewReader(`{"fileId": "f1"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Restore(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Data["restored"])
}

func TestTrashHandlerRestoreRequiresFileID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTrashHandler(&fakeTrashSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/cleanup/restore", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Restore(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrashHandlerExportStreamsFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeTrashSrv{
		exportPayload: []byte("File,Type\n"),
		exportType:    "text/csv",
	}
	handler := NewTrashHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/cleanup/history/export?email=owner@example.com&days=7&format=csv", nil)

	handler.Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cleanup-history-")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
	assert.Equal(t, "owner@example.com", service.lastExport.email)
	assert.Equal(t, 7, service.lastExport.days)
	assert.Equal(t, "csv", service.lastExport.format)
}

func TestTrashHandlerExportRequiresEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTrashHandler(&fakeTrashSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/cleanup/history/export", nil)

	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrashHandlerExportRejectsNegativeDays(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTrashHandler(&fakeTrashSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/cleanup/history/export?email=a@b.com&days=-1", nil)

	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
