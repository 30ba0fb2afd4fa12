package service

import (
	"strconv"
	"strings"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/model"
)

// NotificationQuery описывает параметры отображения ленты уведомлений.
type NotificationQuery struct {
	EventType string // all либо конкретный тип события
	Search    string
}

// FilterNotifications возвращает уведомления, прошедшие фильтр по типу
// события и поиск по типу, номеру заказа и содержимому payload.
func FilterNotifications(notifications []model.Notification, q NotificationQuery) []model.Notification {
	filtered := make([]model.Notification, 0, len(notifications))

	term := strings.ToLower(strings.TrimSpace(q.Search))
	for _, n := range notifications {
		if q.EventType != "" && q.EventType != "all" && n.EventType != q.EventType {
			continue
		}
		if term != "" && !matchesNotification(n, term) {
			continue
		}
		filtered = append(filtered, n)
	}

	return filtered
}

func matchesNotification(n model.Notification, term string) bool {
	if strings.Contains(strings.ToLower(n.EventType), term) {
		return true
	}
	if n.OrderID != nil && strings.Contains(strconv.FormatInt(*n.OrderID, 10), term) {
		return true
	}
	return strings.Contains(strings.ToLower(n.Payload), term)
}

// UnreadCount возвращает число непрочитанных уведомлений в полном списке.
func UnreadCount(notifications []model.Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count
}
