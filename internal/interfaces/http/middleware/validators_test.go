package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidators(t *testing.T) {
	require.NoError(t, RegisterValidators())

	type slot struct {
		Day   string `json:"day" binding:"required,weekday"`
		Start string `json:"start" binding:"required,hhmm"`
		Role  string `json:"role" binding:"omitempty,role"`
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var s slot
		if err := c.ShouldBindJSON(&s); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	cases := map[string]int{
		`{"day":"monday","start":"09:00"}`:                    http.StatusOK,
		`{"day":"sunday","start":"23:59","role":"business"}`:  http.StatusOK,
		`{"day":"Funday","start":"09:00"}`:                    http.StatusBadRequest,
		`{"day":"monday","start":"24:00"}`:                    http.StatusBadRequest,
		`{"day":"monday","start":"9:00"}`:                     http.StatusBadRequest,
		`{"day":"monday","start":"09:00","role":"admin"}`:     http.StatusBadRequest,
		`{"day":"monday","start":"09:00","role":"superuser"}`: http.StatusBadRequest,
	}
	for body, want := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		assert.Equal(t, want, w.Code, body)
	}
}
