package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/infrastructure/memory"
	"complianceconnect.backend/internal/infrastructure/seed"
	"complianceconnect.backend/internal/interfaces/http/middleware"
	"complianceconnect.backend/internal/usecases"
	"complianceconnect.backend/pkg/cache"
	"complianceconnect.backend/pkg/crypto"
	"complianceconnect.backend/pkg/jwt"
)

const testUserHeader = "X-Test-User"

func init() {
	crypto.SetCost(4)
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	t        *testing.T
	storage  *memory.Storage
	router   *gin.Engine
	jwt      *jwt.JWTService
	admin    *entities.User
	business *entities.User
	rajesh   *entities.User
	// rajesh's profile and first service
	pro     *entities.Professional
	service *entities.Service
}

// asCaller resolves the X-Test-User header into the same context keys
// AuthMiddleware sets, so handlers can be tested without tokens.
func asCaller(storage *memory.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(testUserHeader)
		if raw == "" {
			c.Next()
			return
		}
		u, err := storage.Users().GetByID(c.Request.Context(), uuid.MustParse(raw))
		if err != nil {
			c.Next()
			return
		}
		c.Set(middleware.UserIDKey, u.ID)
		c.Set(middleware.UserEmailKey, u.Email)
		c.Set(middleware.UserRoleKey, u.Role)
		c.Next()
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, middleware.RegisterValidators())

	storage, err := memory.NewStorage(ctx)
	require.NoError(t, err)

	env := &testEnv{t: t, storage: storage, jwt: jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)}
	env.admin, err = storage.Users().GetByEmail(ctx, seed.AdminEmail)
	require.NoError(t, err)
	env.business, err = storage.Users().GetByEmail(ctx, seed.BusinessEmail)
	require.NoError(t, err)
	env.rajesh, err = storage.Users().GetByEmail(ctx, "rajesh.kumar@email.com")
	require.NoError(t, err)
	env.pro, err = storage.Professionals().GetByUserID(ctx, env.rajesh.ID)
	require.NoError(t, err)
	services, err := storage.Services().ListByProfessional(ctx, env.pro.ID)
	require.NoError(t, err)
	require.NotEmpty(t, services)
	env.service = services[0]

	users := storage.Users()
	auth := NewAuthHandler(usecases.NewAuthUsecase(users, env.jwt))
	user := NewUserHandler(usecases.NewAuthUsecase(users, env.jwt))
	pro := NewProfessionalHandler(usecases.NewProfessionalUsecase(storage.Professionals(), users))
	svc := NewServiceHandler(usecases.NewServiceUsecase(storage.Services(), storage.Professionals(), users))
	booking := NewBookingHandler(usecases.NewBookingUsecase(storage))
	msg := NewMessageHandler(usecases.NewMessageUsecase(storage, cache.NewMemory(time.Minute), time.Minute))
	req := NewRequirementHandler(usecases.NewRequirementUsecase(storage.Requirements(), users))

	r := gin.New()
	r.Use(asCaller(storage))
	api := r.Group("/api")
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/refresh", auth.RefreshToken)
	api.GET("/users/me", user.GetMe)
	api.PATCH("/users/me", user.UpdateMe)
	api.POST("/professionals", pro.Create)
	api.GET("/professionals", pro.List)
	api.GET("/professionals/:id", pro.Get)
	api.PUT("/professionals/:id/kyc", pro.UpdateKYC)
	api.GET("/services", svc.List)
	api.POST("/services", svc.Create)
	api.GET("/services/:id/quote", svc.Quote)
	api.POST("/bookings", booking.Create)
	api.GET("/bookings/:id", booking.Get)
	api.GET("/bookings/business/:businessId", booking.ListByBusiness)
	api.GET("/bookings/professional/:professionalId", booking.ListByProfessional)
	api.PUT("/bookings/:id", booking.Update)
	api.POST("/messages", msg.Send)
	api.GET("/messages/booking/:bookingId", msg.ListByBooking)
	api.POST("/requirements", req.Create)
	api.GET("/requirements", req.List)
	api.GET("/requirements/business/:businessId", req.ListByBusiness)
	env.router = r
	return env
}

// do sends body (marshalled unless already a string) as caller; a nil caller
// is anonymous.
func (e *testEnv) do(method, path string, caller *entities.User, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf *bytes.Buffer
	switch b := body.(type) {
	case nil:
		buf = &bytes.Buffer{}
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		buf = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req.Header.Set(testUserHeader, caller.ID.String())
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Error struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details"`
	} `json:"error"`
}
