package status

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/budget-ledger/internal/logging"
)

func createTestLogData() *logging.LogData {
	logger := logging.SetupLogging(logrus.InfoLevel)
	logger.Out = io.Discard
	return logging.NewLogData(logger)
}

func TestHandler_GoodMethod(t *testing.T) {
	statusHandler := NewHandler()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)

	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.NoError(t, err)

	res := w.Result()
	assert.Equal(t, 200, res.StatusCode)
}

func TestHandler_BadMethod(t *testing.T) {
	statusHandler := NewHandler()
	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.Error(t, err)

	res := w.Result()
	assert.Equal(t, 400, res.StatusCode)
}

func TestHandler_ThroughLoggingWrapper(t *testing.T) {
	statusHandler := NewHandler()
	logger := logging.SetupLogging(logrus.InfoLevel)
	logger.Out = io.Discard
	wrapped := logging.LoggingWrapper("Status", logger, statusHandler.Handler)

	w := httptest.NewRecorder()
	wrapped(w, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
