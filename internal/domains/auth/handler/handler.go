package handler

import (
	"errors"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"

	"goiashop-bff/internal/domains/auth"
	"goiashop-bff/internal/domains/auth/service"
	"goiashop-bff/internal/session"
	"goiashop-bff/internal/shared/response"
)

// =====================================================
// AUTH HANDLER
// =====================================================

type AuthHandler struct {
	auth *service.Auth
}

func NewAuthHandler(auth *service.Auth) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// sessionView is what the browser gets to see. The bearer token never
// leaves the server side; the cookie is the browser's only credential.
type sessionView struct {
	Kind      session.Kind    `json:"kind"`
	Profile   session.Profile `json:"profile"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func viewOf(sess *session.Session) sessionView {
	return sessionView{
		Kind:      sess.Kind,
		Profile:   sess.Profile,
		ExpiresAt: sess.ExpiresAt,
	}
}

func (h *AuthHandler) login(c *gin.Context, kind session.Kind) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			response.ErrorWithDetails(c, http.StatusUnprocessableEntity,
				"VALIDATION_ERROR", "Some fields need attention", fieldErrs)
			return
		}
		response.UnprocessableEntity(c, err.Error())
		return
	}

	clientID := c.GetString("client_id")
	sess, err := h.auth.Login(c.Request.Context(), clientID, kind, req.Email, req.Password)
	if err != nil {
		if session.IsKindConflict(err) {
			response.Conflict(c, err.Error())
			return
		}
		response.FromGatewayError(c, err)
		return
	}
	response.Success(c, http.StatusOK, viewOf(sess))
}

// Login godoc: POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, session.KindCustomer)
}

// BackofficeLogin godoc: POST /auth/backoffice/login
func (h *AuthHandler) BackofficeLogin(c *gin.Context) {
	h.login(c, session.KindBackoffice)
}

// Logout godoc: POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	clientID := c.GetString("client_id")
	if err := h.auth.Logout(c.Request.Context(), clientID); err != nil {
		response.InternalServerError(c, "Could not clear the session")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"signed_out": true})
}

// Me godoc: GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	clientID := c.GetString("client_id")
	sess, err := h.auth.Me(c.Request.Context(), clientID)
	if err != nil {
		if session.IsNoSession(err) {
			response.ErrorResponse(c, http.StatusUnauthorized, "NO_SESSION", "Not signed in")
			return
		}
		response.InternalServerError(c, "Could not load the session")
		return
	}
	response.Success(c, http.StatusOK, viewOf(sess))
}
