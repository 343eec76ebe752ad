package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/pkg/logger"
)

type errorBody struct {
	Error struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details"`
	} `json:"error"`
}

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	c, w := newContext()

	Success(c, http.StatusOK, gin.H{"ok": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestError_AppError(t *testing.T) {
	c, w := newContext()

	Error(c, domainerrors.NotFound("Booking not found"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, http.StatusNotFound, body.Error.Code)
	assert.Equal(t, "Booking not found", body.Error.Message)
	assert.Nil(t, body.Error.Details)
	assert.True(t, c.IsAborted())
}

func TestError_ValidationDetails(t *testing.T) {
	c, w := newContext()

	Error(c, domainerrors.Validation("Invalid request body", "Key: 'email' failed on 'required'"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Key: 'email' failed on 'required'", decode(t, w).Error.Details)
}

func TestError_Sentinels(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("load: %w", domainerrors.ErrNotFound), http.StatusNotFound},
		{domainerrors.ErrAlreadyExists, http.StatusConflict},
		{fmt.Errorf("%w: status completed -> pending", domainerrors.ErrInvalidTransition), http.StatusConflict},
		{domainerrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{domainerrors.ErrForbidden, http.StatusForbidden},
	}
	for _, tc := range cases {
		c, w := newContext()
		Error(c, tc.err)
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
	}
}

func TestError_GenericErrorIsLoggedNotEchoed(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	prev := logger.GetLogger()
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(prev) })

	c, w := newContext()
	Error(c, errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Internal server error", body.Error.Message)
	assert.NotContains(t, w.Body.String(), "pq:")
	assert.Equal(t, 1, logs.FilterMessage("Request failed").Len())
}
