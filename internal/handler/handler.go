// Package handler содержит HTTP-обработчики страниц фронтенда платформы заказов.
package handler

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/apiclient"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/middleware"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/model"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/session"
)

// Client определяет контракт API платформы заказов, используемый обработчиками.
type Client interface {
	Login(ctx context.Context, email, password string) (*model.Credential, error)
	Register(ctx context.Context, fullName, email, password string) error
	MyOrders(ctx context.Context, token string) ([]model.Order, error)
	CreateOrder(ctx context.Context, token string, draft model.OrderDraft) (*model.Order, error)
	Order(ctx context.Context, token string, id int64) (*model.Order, error)
	DeleteOrder(ctx context.Context, token string, id int64) error
	AdminUsers(ctx context.Context, token string) ([]model.User, error)
	SetUserStatus(ctx context.Context, token string, id int64, active bool) error
	AdminOrders(ctx context.Context, token string) ([]model.Order, error)
	AdminNotifications(ctx context.Context, token string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, token string, id int64) error
	MarkAllNotificationsRead(ctx context.Context, token string) error
	DeleteNotification(ctx context.Context, token string, id int64) error
}

// Handler реализует обработчики страниц фронтенда.
type Handler struct {
	client    Client
	sessions  *session.Store
	templates *TemplateCache
	identity  *middleware.Identity
	logger    *zap.Logger
}

// NewHandler создаёт новый обработчик страниц.
func NewHandler(client Client, sessions *session.Store, templates *TemplateCache, identity *middleware.Identity, logger *zap.Logger) *Handler {
	return &Handler{
		client:    client,
		sessions:  sessions,
		templates: templates,
		identity:  identity,
		logger:    logger,
	}
}

// viewData содержит данные, общие для всех страниц, и данные конкретной страницы.
type viewData struct {
	Title     string
	User      *model.User
	Flashes   []session.Flash
	CSRFField template.HTML
	Page      any
}

// render исполняет шаблон страницы сперва в буфер, чтобы ошибка шаблона
// не смешивалась с уже отправленным телом ответа.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, page any) {
	tmpl := h.templates.Get(name)
	if tmpl == nil {
		h.logger.Error("template not found", zap.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	user, _ := middleware.UserFromContext(r.Context())

	data := viewData{
		Title:     title,
		User:      user,
		Flashes:   h.sessions.Flashes(w, r),
		CSRFField: csrf.TemplateField(r),
		Page:      page,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		h.logger.Error("render template", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// token возвращает токен API из контекста запроса.
// Пустой токен за охранным middleware означает ошибку маршрутизации.
func (h *Handler) token(r *http.Request) string {
	token, _ := middleware.TokenFromContext(r.Context())
	return token
}

// apiErrorMessage возвращает сообщение сервера либо запасной текст,
// как исходный интерфейс: error.response?.data?.message || fallback.
func apiErrorMessage(err error, fallback string) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
