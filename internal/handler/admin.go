package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/model"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/service"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/session"
)

type adminUsersPage struct {
	Users     []model.User
	Stats     service.UserStats
	Query     service.UserQuery
	LoadError string
}

// AdminUsers отображает всех пользователей с поиском, фильтрами и сводкой.
func (h *Handler) AdminUsers(w http.ResponseWriter, r *http.Request) {
	query := service.UserQuery{
		Search:  r.URL.Query().Get("q"),
		Role:    queryOr(r, "role", "all"),
		Status:  queryOr(r, "status", "all"),
		SortAsc: r.URL.Query().Get("dir") != string(service.SortDesc),
	}

	users, err := h.client.AdminUsers(r.Context(), h.token(r))
	if err != nil {
		h.logger.Error("fetch admin users", zap.Error(err))
		h.render(w, r, "admin_users.html", "User Management", adminUsersPage{
			Query:     query,
			LoadError: apiErrorMessage(err, "Failed to load users"),
		})
		return
	}

	h.render(w, r, "admin_users.html", "User Management", adminUsersPage{
		Users: service.FilterUsers(users, query),
		Stats: service.SummarizeUsers(users, time.Now()),
		Query: query,
	})
}

// SetUserStatus включает или отключает пользователя. Изменение всегда
// отправляется в API: при ошибке список остаётся прежним, а ошибка
// показывается flash-сообщением.
func (h *Handler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	active := r.PostFormValue("active") == "true"

	if err := h.client.SetUserStatus(r.Context(), h.token(r), id, active); err != nil {
		h.logger.Error("set user status", zap.Error(err), zap.Int64("userID", id))
		h.sessions.AddFlash(w, r, session.FlashError, apiErrorMessage(err, "Failed to update user status"))
	} else {
		h.sessions.AddFlash(w, r, session.FlashSuccess, "User status updated")
	}

	http.Redirect(w, r, "/admin/users", http.StatusFound)
}

type adminOrdersPage struct {
	Orders    []model.Order
	Stats     service.AdminOrderStats
	Query     service.OrderQuery
	LoadError string
}

// AdminOrders отображает все заказы системы со сводкой по выручке.
// Статусы из устаревшего набора приводятся к каноничному до фильтрации.
func (h *Handler) AdminOrders(w http.ResponseWriter, r *http.Request) {
	query := service.OrderQuery{
		Search:    r.URL.Query().Get("q"),
		Status:    queryOr(r, "status", "all"),
		DateRange: queryOr(r, "range", service.DateRangeAll),
		SortBy:    queryOr(r, "sort", service.SortByDate),
		SortDir:   sortDir(r),
	}

	orders, err := h.client.AdminOrders(r.Context(), h.token(r))
	if err != nil {
		h.logger.Error("fetch admin orders", zap.Error(err))
		h.render(w, r, "admin_orders.html", "Order Management", adminOrdersPage{
			Query:     query,
			LoadError: apiErrorMessage(err, "Failed to load orders"),
		})
		return
	}

	for i := range orders {
		orders[i].Status = model.NormalizeStatus(string(orders[i].Status))
	}

	filtered := service.FilterAdminOrders(orders, query, time.Now())
	service.SortOrders(filtered, query.SortBy, query.SortDir)

	h.render(w, r, "admin_orders.html", "Order Management", adminOrdersPage{
		Orders: filtered,
		Stats:  service.SummarizeAdminOrders(orders),
		Query:  query,
	})
}

type adminNotificationsPage struct {
	Notifications []model.Notification
	UnreadCount   int
	Query         service.NotificationQuery
	LoadError     string
}

// AdminNotifications отображает ленту уведомлений с фильтром по типу события.
func (h *Handler) AdminNotifications(w http.ResponseWriter, r *http.Request) {
	query := service.NotificationQuery{
		EventType: queryOr(r, "type", "all"),
		Search:    r.URL.Query().Get("q"),
	}

	notifications, err := h.client.AdminNotifications(r.Context(), h.token(r))
	if err != nil {
		h.logger.Error("fetch notifications", zap.Error(err))
		h.render(w, r, "admin_notifications.html", "Notifications", adminNotificationsPage{
			Query:     query,
			LoadError: apiErrorMessage(err, "Failed to load notifications"),
		})
		return
	}

	h.render(w, r, "admin_notifications.html", "Notifications", adminNotificationsPage{
		Notifications: service.FilterNotifications(notifications, query),
		UnreadCount:   service.UnreadCount(notifications),
		Query:         query,
	})
}

// MarkNotificationRead помечает уведомление прочитанным.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	if err := h.client.MarkNotificationRead(r.Context(), h.token(r), id); err != nil {
		h.logger.Error("mark notification read", zap.Error(err), zap.Int64("notificationID", id))
		h.sessions.AddFlash(w, r, session.FlashError, "Failed to update notification")
	} else {
		h.sessions.AddFlash(w, r, session.FlashSuccess, "Notification marked as read")
	}

	http.Redirect(w, r, "/admin/notifications", http.StatusFound)
}

// MarkAllNotificationsRead помечает все уведомления прочитанными.
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.client.MarkAllNotificationsRead(r.Context(), h.token(r)); err != nil {
		h.logger.Error("mark all notifications read", zap.Error(err))
		h.sessions.AddFlash(w, r, session.FlashError, "Failed to mark all as read")
	} else {
		h.sessions.AddFlash(w, r, session.FlashSuccess, "All notifications marked as read")
	}

	http.Redirect(w, r, "/admin/notifications", http.StatusFound)
}

// DeleteNotification удаляет уведомление.
func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	if err := h.client.DeleteNotification(r.Context(), h.token(r), id); err != nil {
		h.logger.Error("delete notification", zap.Error(err), zap.Int64("notificationID", id))
		h.sessions.AddFlash(w, r, session.FlashError, "Failed to delete notification")
	} else {
		h.sessions.AddFlash(w, r, session.FlashSuccess, "Notification deleted")
	}

	http.Redirect(w, r, "/admin/notifications", http.StatusFound)
}
