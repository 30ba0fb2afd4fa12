// Package model содержит транспортные сущности, зеркалирующие API платформы заказов.
package model

import (
	"strings"
	"time"
)

// Credential описывает учётные данные сессии, выданные API при входе.
type Credential struct {
	Token     string    `json:"accessToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Role описывает роль пользователя в системе.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User представляет профиль пользователя, полученный от API.
type User struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin сообщает, имеет ли пользователь административную роль.
func (u *User) IsAdmin() bool {
	return u != nil && Role(strings.ToUpper(string(u.Role))) == RoleAdmin
}

// OrderStatus описывает статус обработки заказа.
type OrderStatus string

// Каноничный набор статусов. Устаревшие значения из админского API
// (NEW, COMPLETED и т.п.) приводятся к нему через NormalizeStatus.
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var legacyStatuses = map[string]OrderStatus{
	"NEW":        OrderStatusPending,
	"PROCESSING": OrderStatusProcessing,
	"COMPLETED":  OrderStatusDelivered,
	"CANCELLED":  OrderStatusCancelled,
}

// NormalizeStatus приводит статус заказа к каноничному набору значений.
func NormalizeStatus(s string) OrderStatus {
	if mapped, ok := legacyStatuses[strings.ToUpper(s)]; ok {
		return mapped
	}
	return OrderStatus(strings.ToLower(s))
}

// StatusRank возвращает порядковый номер статуса для сортировки.
func StatusRank(s OrderStatus) int {
	switch s {
	case OrderStatusPending:
		return 1
	case OrderStatusProcessing:
		return 2
	case OrderStatusShipped:
		return 3
	case OrderStatusDelivered:
		return 4
	case OrderStatusCancelled:
		return 5
	default:
		return 6
	}
}

// OrderItem описывает позицию заказа.
type OrderItem struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Description string  `json:"description"`
	Discount    float64 `json:"discount"`
}

// Order описывает заказ и данные для отображения.
type Order struct {
	ID                 int64       `json:"id"`
	CustomerName       string      `json:"customerName"`
	CustomerEmail      string      `json:"customerEmail"`
	CustomerPhone      string      `json:"customerPhone"`
	CustomerAddress    string      `json:"customerAddress"`
	Notes              string      `json:"notes"`
	Items              []OrderItem `json:"items"`
	DiscountPercentage float64     `json:"discountPercentage"`
	TaxRate            float64     `json:"taxRate"`
	TotalAmount        float64     `json:"totalAmount"`
	Status             OrderStatus `json:"status"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

// OrderDraft содержит данные формы создания заказа, отправляемые в API.
type OrderDraft struct {
	CustomerName       string      `json:"customerName"`
	CustomerEmail      string      `json:"customerEmail"`
	CustomerPhone      string      `json:"customerPhone"`
	CustomerAddress    string      `json:"customerAddress"`
	Notes              string      `json:"notes"`
	Items              []OrderItem `json:"items"`
	DiscountPercentage float64     `json:"discountPercentage"`
	TaxRate            float64     `json:"taxRate"`
	TotalAmount        float64     `json:"totalAmount"`
}

// Notification описывает событие для административной ленты уведомлений.
type Notification struct {
	ID        int64     `json:"id"`
	EventType string    `json:"eventType"`
	OrderID   *int64    `json:"orderId,omitempty"`
	Payload   string    `json:"payload"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
