package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/authbase/authbase-go/internal/middleware"
	"github.com/authbase/authbase-go/internal/model"
	"github.com/authbase/authbase-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleLogin handles POST /auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleProfile handles POST /auth/profile requests. The identity comes
// straight from the verified token; no store lookup happens here.
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	writeJSON(w, http.StatusOK, model.ProfileResponse{
		UserID: ident.UserID,
		Email:  ident.Email,
	})
}

// HandleLogout handles POST /auth/logout requests.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.LogoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.Logout(r.Context(), ident.Email, req); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{
		Message: fmt.Sprintf("%s logged out successfully", strings.ToLower(req.Email)),
	})
}

// decodeBody decodes a JSON request body into dst, writing the error response
// itself when decoding fails. An empty body decodes to the zero value so that
// missing-field validation happens in the service, not here.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
		return false
	}

	writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
	return false
}
