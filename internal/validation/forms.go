// Package validation содержит проверку пользовательских форм фронтенда.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors сопоставляет имя поля формы с сообщением об ошибке.
type FieldErrors map[string]string

// Valid сообщает, прошла ли форма проверку.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// IsValidEmail проверяет адрес по базовому шаблону исходного интерфейса.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateLogin проверяет форму входа: оба поля обязательны.
func ValidateLogin(email, password string) FieldErrors {
	errs := FieldErrors{}
	if email == "" || password == "" {
		errs["form"] = "Please fill in all fields"
	}
	return errs
}

// ValidateRegister проверяет форму регистрации.
func ValidateRegister(fullName, email, password, confirmPassword string) FieldErrors {
	errs := FieldErrors{}

	switch {
	case strings.TrimSpace(fullName) == "":
		errs["fullName"] = "Full name is required"
	case len(fullName) < 2:
		errs["fullName"] = "Name must be at least 2 characters"
	}

	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !IsValidEmail(email):
		errs["email"] = "Please enter a valid email"
	}

	switch {
	case password == "":
		errs["password"] = "Password is required"
	case len(password) < 8:
		errs["password"] = "Password must be at least 8 characters"
	}

	if password != confirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}

	return errs
}

// PasswordStrength оценивает пароль по шкале 0..100:
// длина, заглавные буквы, цифры и спецсимволы дают по 25 баллов.
func PasswordStrength(password string) int {
	strength := 0
	if len(password) >= 8 {
		strength += 25
	}
	if strings.IndexFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) >= 0 {
		strength += 25
	}
	if strings.IndexFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0 {
		strength += 25
	}
	if strings.IndexFunc(password, func(r rune) bool {
		return !(r >= 'A' && r <= 'Z') && !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) >= 0 {
		strength += 25
	}
	return strength
}

// ValidateOrderDraft проверяет форму создания заказа.
// Ошибки позиций получают ключи вида item_0_product, item_0_quantity, item_0_price.
func ValidateOrderDraft(draft model.OrderDraft) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(draft.CustomerName) == "" {
		errs["name"] = "Customer name is required"
	}
	if draft.CustomerEmail != "" && !IsValidEmail(draft.CustomerEmail) {
		errs["email"] = "Please enter a valid email"
	}
	if strings.TrimSpace(draft.CustomerPhone) == "" {
		errs["phone"] = "Phone number is required"
	}

	for i, item := range draft.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			errs[fmt.Sprintf("item_%d_product", i)] = "Product name is required"
		}
		if item.Quantity < 1 {
			errs[fmt.Sprintf("item_%d_quantity", i)] = "Quantity must be at least 1"
		}
		if item.UnitPrice < 0 {
			errs[fmt.Sprintf("item_%d_price", i)] = "Price cannot be negative"
		}
	}

	return errs
}
