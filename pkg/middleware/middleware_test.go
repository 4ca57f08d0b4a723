package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/metrics"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Create(ctx context.Context, s *entity.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSessions) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, token)
	s, _ := args.Get(0).(*entity.Session)
	return s, args.Error(1)
}

func (m *mockSessions) Revoke(ctx context.Context, token uuid.UUID) error {
	return m.Called(ctx, token).Error(0)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUsers) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	id, _ := utils.GetUserIDFromContext(r.Context())
	role, _ := utils.GetRoleFromContext(r.Context())
	w.Header().Set("X-User", id.String())
	w.Header().Set("X-Role", role)
	w.WriteHeader(http.StatusOK)
}

func TestAuthSession(t *testing.T) {
	token := uuid.New()
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleAdmin, IsActive: true}
	session := &entity.Session{UserID: user.ID, Token: token, ExpiresAt: time.Now().Add(time.Hour)}

	tests := []struct {
		name   string
		header string
		setup  func(*mockSessions, *mockUsers)
		status int
	}{
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token " + token.String(), status: http.StatusUnauthorized},
		{name: "not a uuid", header: "Bearer abc", status: http.StatusUnauthorized},
		{
			name:   "unknown token",
			header: "Bearer " + token.String(),
			setup: func(s *mockSessions, _ *mockUsers) {
				s.On("FindValidSession", mock.Anything, token).Return(nil, nil)
			},
			status: http.StatusUnauthorized,
		},
		{
			name:   "valid",
			header: "Bearer " + token.String(),
			setup: func(s *mockSessions, u *mockUsers) {
				s.On("FindValidSession", mock.Anything, token).Return(session, nil)
				u.On("FindByID", mock.Anything, user.ID).Return(user, nil)
			},
			status: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, users := new(mockSessions), new(mockUsers)
			if tt.setup != nil {
				tt.setup(sessions, users)
			}

			h := AuthSession(sessions, users, zap.NewNop())(http.HandlerFunc(echoUser))
			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, user.ID.String(), rec.Header().Get("X-User"))
				assert.Equal(t, "admin", rec.Header().Get("X-Role"))
			}
		})
	}
}

func TestAdmin(t *testing.T) {
	h := Admin(zap.NewNop())(http.HandlerFunc(echoUser))

	t.Run("anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/genres", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("customer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/genres", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), string(entity.RoleCustomer)))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/genres", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), string(entity.RoleAdmin)))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestPrometheus_UsesRoutePattern(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(Prometheus(m))
	r.Get("/api/orders/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for range 2 {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders/"+uuid.NewString(), nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/orders/{id}", "404")))
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	h := CORS(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodOptions, "/api/movies", nil)
	req.Header.Set("Origin", "https://tickets.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.False(t, called)
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	h := CORS([]string{"https://tickets.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	allowed := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	allowed.Header.Set("Origin", "https://tickets.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, allowed)
	assert.Equal(t, "https://tickets.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	other := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	other.Header.Set("Origin", "https://elsewhere.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
