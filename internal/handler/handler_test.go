package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/apiclient"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/model"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/session"
)

// stubClient подменяет API в тестах обработчиков и записывает вызовы.
type stubClient struct {
	loginCred *model.Credential
	loginErr  error

	registerErr error

	orders    []model.Order
	ordersErr error

	createdDraft *model.OrderDraft
	createdOrder *model.Order
	createErr    error

	users []model.User

	statusUserID int64
	statusActive bool
	statusErr    error

	notifications []model.Notification
	readID        int64
	readAll       bool
	deletedID     int64
}

func (c *stubClient) Login(_ context.Context, _, _ string) (*model.Credential, error) {
	return c.loginCred, c.loginErr
}

func (c *stubClient) Register(_ context.Context, _, _, _ string) error {
	return c.registerErr
}

func (c *stubClient) MyOrders(_ context.Context, _ string) ([]model.Order, error) {
	return c.orders, c.ordersErr
}

func (c *stubClient) CreateOrder(_ context.Context, _ string, draft model.OrderDraft) (*model.Order, error) {
	c.createdDraft = &draft
	return c.createdOrder, c.createErr
}

func (c *stubClient) Order(_ context.Context, _ string, id int64) (*model.Order, error) {
	for i := range c.orders {
		if c.orders[i].ID == id {
			return &c.orders[i], nil
		}
	}
	return nil, &apiclient.APIError{StatusCode: http.StatusNotFound, Message: "Order not found"}
}

func (c *stubClient) DeleteOrder(_ context.Context, _ string, id int64) error {
	c.deletedID = id
	return nil
}

func (c *stubClient) AdminUsers(_ context.Context, _ string) ([]model.User, error) {
	return c.users, nil
}

func (c *stubClient) SetUserStatus(_ context.Context, _ string, id int64, active bool) error {
	c.statusUserID = id
	c.statusActive = active
	return c.statusErr
}

func (c *stubClient) AdminOrders(_ context.Context, _ string) ([]model.Order, error) {
	return c.orders, c.ordersErr
}

func (c *stubClient) AdminNotifications(_ context.Context, _ string) ([]model.Notification, error) {
	return c.notifications, nil
}

func (c *stubClient) MarkNotificationRead(_ context.Context, _ string, id int64) error {
	c.readID = id
	return nil
}

func (c *stubClient) MarkAllNotificationsRead(_ context.Context, _ string) error {
	c.readAll = true
	return nil
}

func (c *stubClient) DeleteNotification(_ context.Context, _ string, id int64) error {
	c.deletedID = id
	return nil
}

func newTestHandler(t *testing.T, client *stubClient) *Handler {
	t.Helper()

	templates := NewTemplateCache()
	if err := templates.Load("../../web/templates"); err != nil {
		t.Fatalf("load templates: %v", err)
	}

	store := session.NewStore([]byte("0123456789abcdef0123456789abcdef"), false)
	return NewHandler(client, store, templates, nil, zap.NewNop())
}

func formRequest(target string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// withURLParam добавляет параметр маршрута chi в контекст запроса.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestLogin_Success(t *testing.T) {
	client := &stubClient{
		loginCred: &model.Credential{Token: "tok-1", ExpiresAt: time.Now().Add(time.Hour)},
	}
	h := newTestHandler(t, client)

	w := httptest.NewRecorder()
	h.Login(w, formRequest("/login", url.Values{
		"email":    {"user@example.com"},
		"password": {"password123"},
	}))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/orders" {
		t.Fatalf("location = %q, want /orders", loc)
	}
	if len(w.Result().Cookies()) == 0 {
		t.Fatal("session cookie not set")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	client := &stubClient{loginErr: apiclient.ErrUnauthorized}
	h := newTestHandler(t, client)

	w := httptest.NewRecorder()
	h.Login(w, formRequest("/login", url.Values{
		"email":    {"user@example.com"},
		"password": {"wrong-password"},
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Invalid credentials. Please check your email and password.") {
		t.Fatal("error message not rendered")
	}
	if !strings.Contains(body, `value="user@example.com"`) {
		t.Fatal("entered email not preserved in the form")
	}
}

func TestLogin_EmptyFields(t *testing.T) {
	h := newTestHandler(t, &stubClient{})

	w := httptest.NewRecorder()
	h.Login(w, formRequest("/login", url.Values{}))

	if !strings.Contains(w.Body.String(), "Please fill in all fields") {
		t.Fatal("validation message not rendered")
	}
}

func TestRegister_Success(t *testing.T) {
	h := newTestHandler(t, &stubClient{})

	w := httptest.NewRecorder()
	h.Register(w, formRequest("/register", url.Values{
		"fullName":        {"John Doe"},
		"email":           {"john@example.com"},
		"password":        {"password123"},
		"confirmPassword": {"password123"},
	}))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("location = %q, want /login", loc)
	}
}

func TestRegister_ServerRejection(t *testing.T) {
	client := &stubClient{
		registerErr: &apiclient.APIError{StatusCode: http.StatusConflict, Message: "Email already registered"},
	}
	h := newTestHandler(t, client)

	w := httptest.NewRecorder()
	h.Register(w, formRequest("/register", url.Values{
		"fullName":        {"John Doe"},
		"email":           {"john@example.com"},
		"password":        {"password123"},
		"confirmPassword": {"password123"},
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Email already registered") {
		t.Fatal("server message not rendered")
	}
}

func TestMyOrders_RendersList(t *testing.T) {
	client := &stubClient{
		orders: []model.Order{
			{ID: 101, Status: model.OrderStatusPending, TotalAmount: 38.88, CreatedAt: time.Now()},
			{ID: 102, Status: model.OrderStatusDelivered, TotalAmount: 125.5, CreatedAt: time.Now()},
		},
	}
	h := newTestHandler(t, client)

	w := httptest.NewRecorder()
	h.MyOrders(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Order #101", "Order #102", "$38.88", "Showing 2 of 2 orders"} {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q", want)
		}
	}
}

func TestMyOrders_StatusFilter(t *testing.T) {
	client := &stubClient{
		orders: []model.Order{
			{ID: 101, Status: model.OrderStatusPending, CreatedAt: time.Now()},
			{ID: 102, Status: model.OrderStatusDelivered, CreatedAt: time.Now()},
		},
	}
	h := newTestHandler(t, client)

	w := httptest.NewRecorder()
	h.MyOrders(w, httptest.NewRequest(http.MethodGet, "/orders?status=pending", nil))

	body := w.Body.String()
	if !strings.Contains(body, "Order #101") {
		t.Error("matching order missing")
	}
	if strings.Contains(body, "Order #102") {
		t.Error("filtered-out order still rendered")
	}
	if !strings.Contains(body, "Showing 1 of 2 orders") {
		t.Error("summary bar does not reflect the filter")
	}
}

func TestMyOrders_LoadError(t *testing.T) {
	client := &stubClient{ordersErr: &apiclient.APIError{StatusCode: http.StatusBadGateway}}
	h := newTestHandler(t, client)

	w := httptest.NewRecorder()
	h.MyOrders(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	if !strings.Contains(w.Body.String(), "Failed to load orders") {
		t.Fatal("load error not rendered")
	}
}

func TestCreateOrder_ValidationFailure(t *testing.T) {
	client := &stubClient{}
	h := newTestHandler(t, client)

	w := httptest.NewRecorder()
	h.CreateOrder(w, formRequest("/orders/new", url.Values{
		"name":          {""},
		"item_product":  {"Widget"},
		"item_quantity": {"1"},
		"item_price":    {"10"},
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Please fix the errors in the form") {
		t.Fatal("form error not rendered")
	}
	if !strings.Contains(body, "Customer name is required") {
		t.Fatal("field error not rendered")
	}
	if client.createdDraft != nil {
		t.Fatal("invalid draft was sent to the API")
	}
}

func TestCreateOrder_AddItemAction(t *testing.T) {
	client := &stubClient{}
	h := newTestHandler(t, client)

	w := httptest.NewRecorder()
	h.CreateOrder(w, formRequest("/orders/new", url.Values{
		"action":        {"add_item"},
		"item_product":  {"Widget"},
		"item_quantity": {"1"},
		"item_price":    {"10"},
	}))

	body := w.Body.String()
	if !strings.Contains(body, "Item #2") {
		t.Fatal("second item row not rendered")
	}
	if client.createdDraft != nil {
		t.Fatal("add_item must not submit the order")
	}
}

func TestCreateOrder_Success(t *testing.T) {
	client := &stubClient{createdOrder: &model.Order{ID: 42}}
	h := newTestHandler(t, client)

	w := httptest.NewRecorder()
	h.CreateOrder(w, formRequest("/orders/new", url.Values{
		"name":               {"John Doe"},
		"phone":              {"+1 555 0100"},
		"discountPercentage": {"10"},
		"taxRate":            {"8"},
		"item_product":       {"Widget", "Gadget"},
		"item_quantity":      {"2", "1"},
		"item_price":         {"10", "20"},
	}))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/orders/42" {
		t.Fatalf("location = %q, want /orders/42", loc)
	}

	if client.createdDraft == nil {
		t.Fatal("draft was not sent to the API")
	}
	if got := client.createdDraft.TotalAmount; got < 38.87 || got > 38.89 {
		t.Fatalf("total = %v, want 38.88", got)
	}
	if len(client.createdDraft.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(client.createdDraft.Items))
	}
}

func TestOrderDetails(t *testing.T) {
	created := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	client := &stubClient{
		orders: []model.Order{{
			ID:           42,
			CustomerName: "John Doe",
			Status:       model.OrderStatusShipped,
			TotalAmount:  38.88,
			TaxRate:      8,
			CreatedAt:    created,
			UpdatedAt:    created.Add(48 * time.Hour),
			Items:        []model.OrderItem{{ProductName: "Widget", Quantity: 2, UnitPrice: 10}},
		}},
	}
	h := newTestHandler(t, client)

	r := withURLParam(httptest.NewRequest(http.MethodGet, "/orders/42", nil), "id", "42")
	w := httptest.NewRecorder()
	h.OrderDetails(w, r)

	body := w.Body.String()
	for _, want := range []string{"Order #42", "John Doe", "Order placed", "Status changed to shipped"} {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q", want)
		}
	}
}

func TestOrderDetails_InvalidID(t *testing.T) {
	h := newTestHandler(t, &stubClient{})

	r := withURLParam(httptest.NewRequest(http.MethodGet, "/orders/abc", nil), "id", "abc")
	w := httptest.NewRecorder()
	h.OrderDetails(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDeleteOrder(t *testing.T) {
	client := &stubClient{}
	h := newTestHandler(t, client)

	r := withURLParam(formRequest("/orders/42/delete", url.Values{}), "id", "42")
	w := httptest.NewRecorder()
	h.DeleteOrder(w, r)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/orders" {
		t.Fatalf("location = %q, want /orders", loc)
	}
	if client.deletedID != 42 {
		t.Fatalf("deleted id = %d, want 42", client.deletedID)
	}
}

func TestSetUserStatus(t *testing.T) {
	client := &stubClient{}
	h := newTestHandler(t, client)

	r := withURLParam(formRequest("/admin/users/5/status", url.Values{
		"active": {"false"},
	}), "id", "5")
	w := httptest.NewRecorder()
	h.SetUserStatus(w, r)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/users" {
		t.Fatalf("location = %q, want /admin/users", loc)
	}
	if client.statusUserID != 5 || client.statusActive {
		t.Fatalf("api call = (%d, %v), want (5, false)", client.statusUserID, client.statusActive)
	}
}

func TestSetUserStatus_APIFailureRedirectsBack(t *testing.T) {
	client := &stubClient{
		statusErr: &apiclient.APIError{StatusCode: http.StatusForbidden, Message: "Cannot deactivate yourself"},
	}
	h := newTestHandler(t, client)

	r := withURLParam(formRequest("/admin/users/5/status", url.Values{
		"active": {"false"},
	}), "id", "5")
	w := httptest.NewRecorder()
	h.SetUserStatus(w, r)

	// Ошибка не прерывает сценарий: пользователь возвращается к списку
	// и видит flash-сообщение.
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/users" {
		t.Fatalf("location = %q, want /admin/users", loc)
	}
}

func TestAdminNotifications_UnreadCountIgnoresFilters(t *testing.T) {
	orderID := int64(42)
	client := &stubClient{
		notifications: []model.Notification{
			{ID: 1, EventType: "order_created", OrderID: &orderID, Read: false, CreatedAt: time.Now()},
			{ID: 2, EventType: "user_registered", Payload: `{"email":"bob@example.com"}`, Read: false, CreatedAt: time.Now()},
			{ID: 3, EventType: "payment_received", OrderID: &orderID, Read: true, CreatedAt: time.Now()},
		},
	}
	h := newTestHandler(t, client)

	w := httptest.NewRecorder()
	h.AdminNotifications(w, httptest.NewRequest(http.MethodGet, "/admin/notifications?type=order_created", nil))

	body := w.Body.String()
	if !strings.Contains(body, "2 unread") {
		t.Error("unread count must be computed from the full list")
	}
	if strings.Contains(body, "bob@example.com") {
		t.Error("filtered-out notification still rendered")
	}
}

func TestMarkNotificationRead(t *testing.T) {
	client := &stubClient{}
	h := newTestHandler(t, client)

	r := withURLParam(formRequest("/admin/notifications/7/read", url.Values{}), "id", "7")
	w := httptest.NewRecorder()
	h.MarkNotificationRead(w, r)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/notifications" {
		t.Fatalf("location = %q, want /admin/notifications", loc)
	}
	if client.readID != 7 {
		t.Fatalf("read id = %d, want 7", client.readID)
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	client := &stubClient{}
	h := newTestHandler(t, client)

	w := httptest.NewRecorder()
	h.MarkAllNotificationsRead(w, formRequest("/admin/notifications/read-all", url.Values{}))

	if !client.readAll {
		t.Fatal("read-all was not sent to the API")
	}
	if loc := w.Header().Get("Location"); loc != "/admin/notifications" {
		t.Fatalf("location = %q, want /admin/notifications", loc)
	}
}
