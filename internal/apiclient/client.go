// Package apiclient предоставляет клиент для удалённого API платформы заказов.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/model"
)

// ErrUnauthorized возвращается, когда API отклоняет запрос с кодом 401.
// Для охранных middleware это единственный признак «не аутентифицирован»;
// остальные ошибки API сюда не сводятся.
var ErrUnauthorized = errors.New("unauthorized")

// APIError описывает ошибку API с кодом ответа и сообщением сервера.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Client инкапсулирует HTTP-взаимодействие с API платформы заказов.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт HTTP-клиент для обращения к API по указанному адресу.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// listResponse соответствует формату постраничных ответов API: {"content": [...]}.
type listResponse[T any] struct {
	Content []T `json:"content"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("api client not configured")
	}

	base := c.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(resp.Body),
		}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// serverMessage извлекает поле message из тела ошибки, если оно есть.
func serverMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}

// Login выполняет вход и возвращает учётные данные сессии.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Credential, error) {
	req := map[string]string{"email": email, "password": password}

	var cred model.Credential
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

// Register создаёт нового пользователя.
func (c *Client) Register(ctx context.Context, fullName, email, password string) error {
	req := map[string]string{
		"fullName": fullName,
		"email":    email,
		"password": password,
	}
	return c.do(ctx, http.MethodPost, "/api/auth/register", "", req, nil)
}

// Me возвращает профиль текущего пользователя.
func (c *Client) Me(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// MyOrders возвращает заказы текущего пользователя.
func (c *Client) MyOrders(ctx context.Context, token string) ([]model.Order, error) {
	var resp listResponse[model.Order]
	if err := c.do(ctx, http.MethodGet, "/api/orders/my", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Content, nil
}

// CreateOrder создаёт заказ и возвращает его представление от API.
func (c *Client) CreateOrder(ctx context.Context, token string, draft model.OrderDraft) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", token, draft, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Order возвращает заказ по идентификатору.
func (c *Client) Order(ctx context.Context, token string, id int64) (*model.Order, error) {
	var order model.Order
	path := fmt.Sprintf("/api/orders/%d", id)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder удаляет заказ по идентификатору.
func (c *Client) DeleteOrder(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/orders/%d", id), token, nil, nil)
}

// AdminUsers возвращает список всех пользователей системы.
func (c *Client) AdminUsers(ctx context.Context, token string) ([]model.User, error) {
	var resp listResponse[model.User]
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Content, nil
}

// SetUserStatus включает или отключает пользователя.
func (c *Client) SetUserStatus(ctx context.Context, token string, id int64, active bool) error {
	req := map[string]bool{"active": active}
	path := fmt.Sprintf("/api/admin/users/%d/status", id)
	return c.do(ctx, http.MethodPut, path, token, req, nil)
}

// AdminOrders возвращает список всех заказов системы.
func (c *Client) AdminOrders(ctx context.Context, token string) ([]model.Order, error) {
	var resp listResponse[model.Order]
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Content, nil
}

// AdminNotifications возвращает ленту уведомлений.
func (c *Client) AdminNotifications(ctx context.Context, token string) ([]model.Notification, error) {
	var resp listResponse[model.Notification]
	if err := c.do(ctx, http.MethodGet, "/api/admin/notifications", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Content, nil
}

// MarkNotificationRead помечает уведомление прочитанным.
func (c *Client) MarkNotificationRead(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/api/admin/notifications/%d/read", id)
	return c.do(ctx, http.MethodPut, path, token, nil, nil)
}

// MarkAllNotificationsRead помечает все уведомления прочитанными.
func (c *Client) MarkAllNotificationsRead(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPut, "/api/admin/notifications/read-all", token, nil, nil)
}

// DeleteNotification удаляет уведомление.
func (c *Client) DeleteNotification(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/notifications/%d", id), token, nil, nil)
}
