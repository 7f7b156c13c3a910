package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MomchilovP/peachtree/internal/authority"
	"github.com/MomchilovP/peachtree/internal/http/render"
)

type Handler struct {
	svc    *authority.Service
	tokens *authority.Tokens
}

func NewHandler(svc *authority.Service, tokens *authority.Tokens) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireUser)
		r.Get("/me", h.me)
	})
}

type userKey struct{}

// UserFrom returns the user RequireUser attached to the request context.
func UserFrom(ctx context.Context) (*authority.User, bool) {
	u, ok := ctx.Value(userKey{}).(*authority.User)
	return u, ok
}

// RequireUser resolves the bearer token to a registered user.
func (h *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			render.Error(w, http.StatusForbidden, "Not authenticated")
			return
		}

		username, err := h.tokens.Verify(token)
		if err != nil {
			unauthorized(w, "Could not validate credentials")
			return
		}

		u, err := h.svc.UserByUsername(r.Context(), username)
		if err != nil {
			unauthorized(w, "Could not validate credentials")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, u)))
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.svc.Register(r.Context(), authority.RegisterParams{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		var rejected *authority.RejectedError
		if errors.As(err, &rejected) {
			render.Error(w, http.StatusBadRequest, rejected.Reason)
			return
		}

		slog.Error("failed to register user", "error", err)
		render.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	render.JSON(w, http.StatusCreated, toUserResponse(u))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		unauthorized(w, "Incorrect username or password")
		return
	}

	token, err := h.tokens.Issue(u.Username)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		render.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	render.JSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFrom(r.Context())
	render.JSON(w, http.StatusOK, toUserResponse(u))
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Balance  string `json:"balance"`
}

func toUserResponse(u *authority.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Balance:  u.Balance.StringFixed(2),
	}
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Error(w, http.StatusUnauthorized, detail)
}
