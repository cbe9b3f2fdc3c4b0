package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/workhub/leave-management/internal/transport"
	"github.com/workhub/leave-management/pkg/logger"
)

type ServiceAPI interface {
	Login(dto LoginDTO) (*LoginResponse, error)
	Logout(session *Session, token string) error
	ValidateAccessToken(tokenString string) (*Claims, error)
	IsRevoked(token string) bool
	SessionFor(claims *Claims, token string) (*Session, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Login: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Login(dto)
	if err != nil {
		h.Logger.Warn("Login: failed", "error", err, "employee_id", dto.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Welcome %d", session.EmployeeID),
		"user": map[string]any{
			"name":        session.EmpName,
			"employee_id": session.EmployeeID,
			"isManager":   session.IsManager,
		},
	})
}

// Logout tolerates a missing or stale token: a request without a token is a
// no-op success, and a token whose session cannot be resolved is still
// blacklisted and its slot cleared by value.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteJSON(w, http.StatusOK, map[string]any{"message": "No token present"})
		return
	}

	var session *Session
	if claims, err := h.Service.ValidateAccessToken(token); err == nil {
		session, _ = h.Service.SessionFor(claims, token)
	}

	if err := h.Service.Logout(session, token); err != nil {
		h.Logger.Error("Logout: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{"message": "Logout successful. Token blacklisted."})
}

// AuthMiddleware guards a route subtree: the presented token must parse,
// must not be blacklisted, and must be the login's currently active token.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "Unauthenticated")
			return
		}

		if h.Service.IsRevoked(token) {
			h.WriteError(w, http.StatusUnauthorized, "Token blacklisted")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}

		session, err := h.Service.SessionFor(claims, token)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), session)))
	})
}
