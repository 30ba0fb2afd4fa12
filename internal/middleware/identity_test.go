package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/apiclient"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/model"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/session"
)

type stubIdentityClient struct {
	user *model.User
	err  error
}

func (c *stubIdentityClient) Me(_ context.Context, _ string) (*model.User, error) {
	return c.user, c.err
}

func newIdentityRequest(t *testing.T, store *session.Store, token string) *http.Request {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/orders", nil)
	if token == "" {
		return r
	}

	w := httptest.NewRecorder()
	if err := store.Save(w, httptest.NewRequest(http.MethodPost, "/login", nil), model.Credential{Token: token}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestRequireUser(t *testing.T) {
	store := session.NewStore([]byte("0123456789abcdef0123456789abcdef"), false)

	tests := []struct {
		name         string
		token        string
		client       *stubIdentityClient
		wantStatus   int
		wantLocation string
		wantNext     bool
	}{
		{
			name:         "no session redirects to login",
			token:        "",
			client:       &stubIdentityClient{},
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:         "expired token redirects to login",
			token:        "expired",
			client:       &stubIdentityClient{err: apiclient.ErrUnauthorized},
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:       "api failure returns bad gateway",
			token:      "tok-1",
			client:     &stubIdentityClient{err: errors.New("connection refused")},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "valid session passes through",
			token:      "tok-1",
			client:     &stubIdentityClient{user: &model.User{ID: 1, Role: model.RoleUser}},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := NewIdentity(store, tt.client, zap.NewNop())

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true

				user, ok := UserFromContext(r.Context())
				if !ok || user.ID != tt.client.user.ID {
					t.Errorf("user missing from context")
				}
				token, ok := TokenFromContext(r.Context())
				if !ok || token != tt.token {
					t.Errorf("token = %q, want %q", token, tt.token)
				}
			})

			w := httptest.NewRecorder()
			identity.RequireUser(next).ServeHTTP(w, newIdentityRequest(t, store, tt.token))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantLocation != "" && w.Header().Get("Location") != tt.wantLocation {
				t.Fatalf("location = %q, want %q", w.Header().Get("Location"), tt.wantLocation)
			}
			if nextCalled != tt.wantNext {
				t.Fatalf("next called = %v, want %v", nextCalled, tt.wantNext)
			}
		})
	}
}

func TestRequireUser_ClearsSessionOnUnauthorized(t *testing.T) {
	store := session.NewStore([]byte("0123456789abcdef0123456789abcdef"), false)
	identity := NewIdentity(store, &stubIdentityClient{err: apiclient.ErrUnauthorized}, zap.NewNop())

	w := httptest.NewRecorder()
	identity.RequireUser(http.NotFoundHandler()).ServeHTTP(w, newIdentityRequest(t, store, "expired"))

	after := httptest.NewRequest(http.MethodGet, "/orders", nil)
	for _, c := range w.Result().Cookies() {
		after.AddCookie(c)
	}
	if store.IsPresent(after) {
		t.Fatal("session still present after 401 from API")
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		user       *model.User
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "admin passes through",
			user:       &model.User{ID: 1, Role: model.RoleAdmin},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "regular user redirected to orders",
			user:       &model.User{ID: 2, Role: model.RoleUser},
			wantStatus: http.StatusFound,
		},
		{
			name:       "missing identity redirected to orders",
			user:       nil,
			wantStatus: http.StatusFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := NewIdentity(nil, nil, zap.NewNop())

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			r := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			if tt.user != nil {
				r = r.WithContext(context.WithValue(r.Context(), userKey, tt.user))
			}

			w := httptest.NewRecorder()
			identity.RequireAdmin(next).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusFound && w.Header().Get("Location") != "/orders" {
				t.Fatalf("location = %q, want /orders", w.Header().Get("Location"))
			}
			if nextCalled != tt.wantNext {
				t.Fatalf("next called = %v, want %v", nextCalled, tt.wantNext)
			}
		})
	}
}
