package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/tours-backend/internal/api/httpx"
	"github.com/baharkarakas/tours-backend/internal/api/validate"
	"github.com/baharkarakas/tours-backend/internal/middleware"
	"github.com/baharkarakas/tours-backend/internal/models"
	"github.com/baharkarakas/tours-backend/internal/services"
)

type AuthHandler struct {
	users  *services.UserService
	appEnv string
}

func NewAuthHandler(users *services.UserService, appEnv string) *AuthHandler {
	return &AuthHandler{users: users, appEnv: appEnv}
}

type signupReq struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

type tokenResp struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if err := validate.Body(r, &req); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	u, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password, req.PasswordConfirm)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	_, token, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, tokenResp{Token: token, User: u})
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := validate.Body(r, &req); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	u, token, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{Token: token, User: u})
}

type forgotReq struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword issues a reset token. Delivery is out of band; the token is
// echoed in the response only outside prod, so the flow stays exercisable
// without a mail sender.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotReq
	if err := validate.Body(r, &req); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	token, err := h.users.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		// Do not reveal whether the email exists.
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "if the account exists, a reset token has been issued"})
		return
	}
	resp := map[string]string{"message": "if the account exists, a reset token has been issued"}
	if h.appEnv != "prod" {
		resp["resetToken"] = token
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

type resetReq struct {
	Password        string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	var req resetReq
	if err := validate.Body(r, &req); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	if err := h.users.ResetPassword(r.Context(), token, req.Password, req.PasswordConfirm); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "password has been reset"})
}

type changePasswordReq struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.CurrentUser(r.Context())
	var req changePasswordReq
	if err := validate.Body(r, &req); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	if err := h.users.ChangePassword(r.Context(), u.ID, req.PasswordCurrent, req.Password, req.PasswordConfirm); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	// Re-issue a token; the old one is now invalidated by the backdated
	// passwordChangedAt stamp.
	_, token, err := h.users.Authenticate(r.Context(), u.Email, req.Password)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}
