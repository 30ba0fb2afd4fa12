// Package middleware содержит HTTP middleware фронтенда платформы заказов.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/apiclient"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/model"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/session"
)

type contextKey string

const (
	userKey  contextKey = "user"
	tokenKey contextKey = "token"
)

// IdentityClient описывает контракт запроса профиля текущего пользователя.
type IdentityClient interface {
	Me(ctx context.Context, token string) (*model.User, error)
}

// Identity выполняет проверку аутентификации: читает токен из сессии и
// запрашивает профиль у API один раз на каждый запрос страницы.
type Identity struct {
	sessions *session.Store
	client   IdentityClient
	logger   *zap.Logger
}

// NewIdentity создаёт middleware аутентификации.
func NewIdentity(sessions *session.Store, client IdentityClient, logger *zap.Logger) *Identity {
	return &Identity{
		sessions: sessions,
		client:   client,
		logger:   logger,
	}
}

// RequireUser пропускает только аутентифицированные запросы.
//
// Исходы различаются, а не сводятся к одному «не вошёл»: отсутствие токена
// и ответ 401 ведут на /login, а сетевые и серверные ошибки API отдают
// 502 — страницу можно перезагрузить и повторить запрос.
func (m *Identity) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cred, ok := m.sessions.Credential(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		user, err := m.client.Me(r.Context(), cred.Token)
		if err != nil {
			if errors.Is(err, apiclient.ErrUnauthorized) {
				// Токен истёк либо отозван: чистим сессию и отправляем на вход.
				_ = m.sessions.Clear(w, r)
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			m.logger.Error("identity fetch failed", zap.Error(err))
			http.Error(w, "The order service is temporarily unavailable. Please try again.", http.StatusBadGateway)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, cred.Token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает только пользователей с ролью ADMIN.
// Применяется после RequireUser; остальных отправляет на /orders.
func (m *Identity) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !user.IsAdmin() {
			http.Redirect(w, r, "/orders", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext извлекает профиль пользователя из контекста запроса.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}

// TokenFromContext извлекает токен API из контекста запроса.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
