package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/apiclient"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/session"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/validation"
)

type loginPage struct {
	Email string
	Error string
}

// LoginPage отображает форму входа.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", "Sign In", loginPage{})
}

// Login выполняет вход: проверяет форму, обменивает учётные данные на токен
// и сохраняет его в сессии. При неуспехе форма показывается снова,
// сессия не меняется.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if errs := validation.ValidateLogin(email, password); !errs.Valid() {
		h.render(w, r, "login.html", "Sign In", loginPage{Email: email, Error: errs["form"]})
		return
	}

	cred, err := h.client.Login(r.Context(), email, password)
	if err != nil {
		msg := "Invalid credentials. Please check your email and password."
		if !errors.Is(err, apiclient.ErrUnauthorized) {
			msg = apiErrorMessage(err, msg)
			h.logger.Error("login failed", zap.Error(err))
		}
		h.render(w, r, "login.html", "Sign In", loginPage{Email: email, Error: msg})
		return
	}

	if err := h.sessions.Save(w, r, *cred); err != nil {
		h.logger.Error("save session", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/orders", http.StatusFound)
}

type registerPage struct {
	FullName         string
	Email            string
	Errors           validation.FieldErrors
	PasswordStrength int
}

// RegisterPage отображает форму регистрации.
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html", "Create Account", registerPage{Errors: validation.FieldErrors{}})
}

// Register создаёт нового пользователя и отправляет на страницу входа.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	fullName := r.PostFormValue("fullName")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirmPassword")

	page := registerPage{
		FullName:         fullName,
		Email:            email,
		PasswordStrength: validation.PasswordStrength(password),
	}

	if errs := validation.ValidateRegister(fullName, email, password, confirm); !errs.Valid() {
		page.Errors = errs
		h.render(w, r, "register.html", "Create Account", page)
		return
	}

	if err := h.client.Register(r.Context(), fullName, email, password); err != nil {
		h.logger.Error("register failed", zap.Error(err))
		page.Errors = validation.FieldErrors{
			"submit": apiErrorMessage(err, "Registration failed. Please try again."),
		}
		h.render(w, r, "register.html", "Create Account", page)
		return
	}

	h.sessions.AddFlash(w, r, session.FlashSuccess, "Registration successful! Please login to continue")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Logout очищает сессию целиком и отправляет на страницу входа.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.logger.Error("clear session", zap.Error(err))
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
