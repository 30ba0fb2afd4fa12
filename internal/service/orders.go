// Package service реализует проекции списков и расчёты фронтенда платформы заказов.
//
// Все функции чистые: списки приходят от API на каждый запрос страницы,
// фильтрация и сортировка выполняются в памяти без обращений к серверу.
package service

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/model"
)

// SortDir задаёт направление сортировки.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Ключи сортировки списков заказов.
const (
	SortByDate     = "date"
	SortByAmount   = "amount"
	SortByStatus   = "status"
	SortByCustomer = "customer"
)

// Диапазоны фильтра по дате создания заказа.
const (
	DateRangeAll   = "all"
	DateRangeToday = "today"
	DateRangeWeek  = "week"
	DateRangeMonth = "month"
)

// OrderQuery описывает параметры отображения списка заказов.
type OrderQuery struct {
	Search    string
	Status    string // all либо каноничный статус
	DateRange string // all, today, week, month
	SortBy    string
	SortDir   SortDir
}

// FilterMyOrders возвращает заказы пользователя, прошедшие поиск и фильтр по статусу.
// Поиск — подстрока без учёта регистра по идентификатору, статусу и сумме.
func FilterMyOrders(orders []model.Order, q OrderQuery) []model.Order {
	filtered := make([]model.Order, 0, len(orders))

	term := strings.ToLower(strings.TrimSpace(q.Search))
	for _, o := range orders {
		if term != "" && !matchesMyOrder(o, term) {
			continue
		}
		if q.Status != "" && q.Status != "all" && o.Status != model.OrderStatus(q.Status) {
			continue
		}
		filtered = append(filtered, o)
	}

	return filtered
}

func matchesMyOrder(o model.Order, term string) bool {
	return strings.Contains(strconv.FormatInt(o.ID, 10), term) ||
		strings.Contains(strings.ToLower(string(o.Status)), term) ||
		strings.Contains(formatAmount(o.TotalAmount), term)
}

// FilterAdminOrders возвращает заказы, прошедшие поиск, фильтр по статусу
// и фильтр по дате создания. Поиск — по идентификатору, имени и email клиента.
func FilterAdminOrders(orders []model.Order, q OrderQuery, now time.Time) []model.Order {
	filtered := make([]model.Order, 0, len(orders))

	term := strings.ToLower(strings.TrimSpace(q.Search))
	cutoff, hasCutoff := dateCutoff(q.DateRange, now)

	for _, o := range orders {
		if term != "" && !matchesAdminOrder(o, term) {
			continue
		}
		if q.Status != "" && q.Status != "all" && o.Status != model.NormalizeStatus(q.Status) {
			continue
		}
		if hasCutoff && o.CreatedAt.Before(cutoff) {
			continue
		}
		filtered = append(filtered, o)
	}

	return filtered
}

func matchesAdminOrder(o model.Order, term string) bool {
	return strings.Contains(strconv.FormatInt(o.ID, 10), term) ||
		strings.Contains(strings.ToLower(o.CustomerName), term) ||
		strings.Contains(strings.ToLower(o.CustomerEmail), term)
}

func dateCutoff(dateRange string, now time.Time) (time.Time, bool) {
	switch dateRange {
	case DateRangeToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case DateRangeWeek:
		return now.AddDate(0, 0, -7), true
	case DateRangeMonth:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

// SortOrders сортирует заказы на месте по одному ключу.
// Вторичного ключа нет: порядок равных элементов не определён.
func SortOrders(orders []model.Order, sortBy string, dir SortDir) {
	less := orderLess(sortBy)
	if less == nil {
		return
	}

	sort.Slice(orders, func(i, j int) bool {
		if dir == SortDesc {
			i, j = j, i
		}
		return less(orders[i], orders[j])
	})
}

func orderLess(sortBy string) func(a, b model.Order) bool {
	switch sortBy {
	case SortByDate:
		return func(a, b model.Order) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortByAmount:
		return func(a, b model.Order) bool { return a.TotalAmount < b.TotalAmount }
	case SortByStatus:
		return func(a, b model.Order) bool {
			return model.StatusRank(a.Status) < model.StatusRank(b.Status)
		}
	case SortByCustomer:
		return func(a, b model.Order) bool {
			return strings.ToLower(a.CustomerName) < strings.ToLower(b.CustomerName)
		}
	default:
		return nil
	}
}

// StatusCounts содержит количество заказов по каждому статусу.
type StatusCounts struct {
	All        int
	Pending    int
	Processing int
	Shipped    int
	Delivered  int
	Cancelled  int
}

// CountByStatus пересчитывает статистику по статусам из полного списка.
func CountByStatus(orders []model.Order) StatusCounts {
	counts := StatusCounts{All: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusPending:
			counts.Pending++
		case model.OrderStatusProcessing:
			counts.Processing++
		case model.OrderStatusShipped:
			counts.Shipped++
		case model.OrderStatusDelivered:
			counts.Delivered++
		case model.OrderStatusCancelled:
			counts.Cancelled++
		}
	}
	return counts
}

// AdminOrderStats содержит сводку для административного списка заказов.
type AdminOrderStats struct {
	Total     int
	Revenue   float64
	New       int
	Completed int
}

// SummarizeAdminOrders считает сводку по полному списку заказов.
func SummarizeAdminOrders(orders []model.Order) AdminOrderStats {
	stats := AdminOrderStats{Total: len(orders)}
	for _, o := range orders {
		stats.Revenue += o.TotalAmount
		switch o.Status {
		case model.OrderStatusPending:
			stats.New++
		case model.OrderStatusDelivered:
			stats.Completed++
		}
	}
	return stats
}

// DisplayedTotal возвращает суммарную стоимость отображаемых заказов.
func DisplayedTotal(orders []model.Order) float64 {
	var sum float64
	for _, o := range orders {
		sum += o.TotalAmount
	}
	return sum
}

// formatAmount форматирует сумму так же, как исходный интерфейс:
// без хвостовых нулей, чтобы поиск по "40" находил заказ на $40.00.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
