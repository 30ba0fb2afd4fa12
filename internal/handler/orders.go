package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/model"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/service"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/session"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/validation"
)

type myOrdersPage struct {
	Orders         []model.Order
	TotalCount     int
	Counts         service.StatusCounts
	DisplayedTotal float64
	Query          service.OrderQuery
	LoadError      string
}

// MyOrders отображает заказы пользователя: полный список запрашивается у API,
// фильтрация и сортировка выполняются в памяти по параметрам запроса.
func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	query := service.OrderQuery{
		Search:  r.URL.Query().Get("q"),
		Status:  queryOr(r, "status", "all"),
		SortBy:  queryOr(r, "sort", service.SortByDate),
		SortDir: sortDir(r),
	}

	orders, err := h.client.MyOrders(r.Context(), h.token(r))
	if err != nil {
		h.logger.Error("fetch my orders", zap.Error(err))
		h.render(w, r, "orders.html", "My Orders", myOrdersPage{
			Query:     query,
			LoadError: apiErrorMessage(err, "Failed to load orders"),
		})
		return
	}

	filtered := service.FilterMyOrders(orders, query)
	service.SortOrders(filtered, query.SortBy, query.SortDir)

	h.render(w, r, "orders.html", "My Orders", myOrdersPage{
		Orders:         filtered,
		TotalCount:     len(orders),
		Counts:         service.CountByStatus(orders),
		DisplayedTotal: service.DisplayedTotal(filtered),
		Query:          query,
	})
}

type orderFormPage struct {
	Draft     model.OrderDraft
	Errors    validation.FieldErrors
	Breakdown service.Breakdown
	ItemStats service.ItemStats
	FormError string
}

// NewOrderPage отображает пустую форму создания заказа:
// одна позиция, налог 8% по умолчанию.
func (h *Handler) NewOrderPage(w http.ResponseWriter, r *http.Request) {
	draft := model.OrderDraft{
		Items:   []model.OrderItem{{Quantity: 1}},
		TaxRate: 8,
	}
	h.renderOrderForm(w, r, draft, validation.FieldErrors{}, "")
}

// CreateOrder обрабатывает форму создания заказа. Кнопки добавления и
// удаления позиций отправляют ту же форму с полем action и не валидируются.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	draft := parseOrderForm(r)

	switch action := r.PostFormValue("action"); {
	case action == "add_item":
		draft.Items = append(draft.Items, model.OrderItem{Quantity: 1})
		h.renderOrderForm(w, r, draft, validation.FieldErrors{}, "")
		return
	case len(action) > len("remove_item_") && action[:len("remove_item_")] == "remove_item_":
		idx, err := strconv.Atoi(action[len("remove_item_"):])
		if err == nil && idx >= 0 && idx < len(draft.Items) && len(draft.Items) > 1 {
			draft.Items = append(draft.Items[:idx], draft.Items[idx+1:]...)
		}
		h.renderOrderForm(w, r, draft, validation.FieldErrors{}, "")
		return
	}

	errs := validation.ValidateOrderDraft(draft)
	if !errs.Valid() {
		h.renderOrderForm(w, r, draft, errs, "Please fix the errors in the form")
		return
	}

	breakdown := service.CalculateBreakdown(draft.Items, draft.DiscountPercentage, draft.TaxRate)
	draft.TotalAmount = breakdown.Total

	order, err := h.client.CreateOrder(r.Context(), h.token(r), draft)
	if err != nil {
		h.logger.Error("create order", zap.Error(err))
		h.renderOrderForm(w, r, draft, validation.FieldErrors{}, apiErrorMessage(err, "Failed to create order"))
		return
	}

	h.sessions.AddFlash(w, r, session.FlashSuccess, "Order created successfully!")
	http.Redirect(w, r, fmt.Sprintf("/orders/%d", order.ID), http.StatusFound)
}

func (h *Handler) renderOrderForm(w http.ResponseWriter, r *http.Request, draft model.OrderDraft, errs validation.FieldErrors, formError string) {
	h.render(w, r, "order_form.html", "Create New Order", orderFormPage{
		Draft:     draft,
		Errors:    errs,
		Breakdown: service.CalculateBreakdown(draft.Items, draft.DiscountPercentage, draft.TaxRate),
		ItemStats: service.SummarizeItems(draft.Items),
		FormError: formError,
	})
}

// parseOrderForm собирает черновик заказа из полей формы.
// Нечисловые значения превращаются в нули так же, как parseInt/parseFloat
// в исходном интерфейсе.
func parseOrderForm(r *http.Request) model.OrderDraft {
	draft := model.OrderDraft{
		CustomerName:       r.PostFormValue("name"),
		CustomerEmail:      r.PostFormValue("email"),
		CustomerPhone:      r.PostFormValue("phone"),
		CustomerAddress:    r.PostFormValue("address"),
		Notes:              r.PostFormValue("notes"),
		DiscountPercentage: parseFloat(r.PostFormValue("discountPercentage")),
		TaxRate:            parseFloat(r.PostFormValue("taxRate")),
	}

	names := r.PostForm["item_product"]
	quantities := r.PostForm["item_quantity"]
	prices := r.PostForm["item_price"]
	descriptions := r.PostForm["item_description"]
	discounts := r.PostForm["item_discount"]

	for i := range names {
		item := model.OrderItem{ProductName: names[i]}
		if i < len(quantities) {
			item.Quantity = parseInt(quantities[i])
		}
		if i < len(prices) {
			item.UnitPrice = parseFloat(prices[i])
		}
		if i < len(descriptions) {
			item.Description = descriptions[i]
		}
		if i < len(discounts) {
			item.Discount = parseFloat(discounts[i])
		}
		draft.Items = append(draft.Items, item)
	}

	if len(draft.Items) == 0 {
		draft.Items = []model.OrderItem{{Quantity: 1}}
	}

	return draft
}

// timelineEntry описывает событие в хронологии заказа.
type timelineEntry struct {
	Label string
	At    time.Time
}

type orderDetailsPage struct {
	Order     *model.Order
	Breakdown service.Breakdown
	Timeline  []timelineEntry
	LoadError string
}

// OrderDetails отображает один заказ с разбивкой стоимости и хронологией.
func (h *Handler) OrderDetails(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	order, err := h.client.Order(r.Context(), h.token(r), id)
	if err != nil {
		h.logger.Error("fetch order", zap.Error(err), zap.Int64("orderID", id))
		h.render(w, r, "order_details.html", "Order Details", orderDetailsPage{
			LoadError: apiErrorMessage(err, "Failed to load order details"),
		})
		return
	}

	timeline := []timelineEntry{{Label: "Order placed", At: order.CreatedAt}}
	if order.UpdatedAt.After(order.CreatedAt) {
		timeline = append(timeline, timelineEntry{
			Label: fmt.Sprintf("Status changed to %s", order.Status),
			At:    order.UpdatedAt,
		})
	}

	h.render(w, r, "order_details.html", fmt.Sprintf("Order #%d", order.ID), orderDetailsPage{
		Order:     order,
		Breakdown: service.CalculateBreakdown(order.Items, order.DiscountPercentage, order.TaxRate),
		Timeline:  timeline,
	})
}

type deleteOrderPage struct {
	OrderID int64
}

// DeleteOrderConfirm отображает явный шаг подтверждения удаления.
func (h *Handler) DeleteOrderConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	h.render(w, r, "order_delete.html", "Delete Order", deleteOrderPage{OrderID: id})
}

// DeleteOrder удаляет заказ после подтверждения и возвращает к списку.
// При ошибке заказ остаётся на месте, ошибка показывается на его странице.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	if err := h.client.DeleteOrder(r.Context(), h.token(r), id); err != nil {
		h.logger.Error("delete order", zap.Error(err), zap.Int64("orderID", id))
		h.sessions.AddFlash(w, r, session.FlashError, "Failed to delete order. Please try again.")
		http.Redirect(w, r, fmt.Sprintf("/orders/%d", id), http.StatusFound)
		return
	}

	h.sessions.AddFlash(w, r, session.FlashSuccess, "Order deleted")
	http.Redirect(w, r, "/orders", http.StatusFound)
}

func orderID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid order id")
	}
	return id, nil
}

func queryOr(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}

func sortDir(r *http.Request) service.SortDir {
	if r.URL.Query().Get("dir") == string(service.SortAsc) {
		return service.SortAsc
	}
	return service.SortDesc
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
