package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"

	"goiashop-bff/internal/cep"
	"goiashop-bff/internal/domains/address"
	"goiashop-bff/internal/domains/address/service"
	"goiashop-bff/internal/gateway"
	"goiashop-bff/internal/session"
	"goiashop-bff/internal/shared/response"
)

// =====================================================
// ADDRESS HANDLER
// =====================================================

type AddressHandler struct {
	addresses *service.AddressBook
}

func NewAddressHandler(addresses *service.AddressBook) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

func customerID(c *gin.Context) (string, bool) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		response.Unauthorized(c, "Not signed in")
		return "", false
	}
	return sess.Profile.ID, true
}

// respondFormErrors answers a rejected form with the per-field messages.
// Nothing reaches the gateway on this path.
func respondFormErrors(c *gin.Context, err error) bool {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return false
	}
	response.ErrorWithDetails(c, http.StatusUnprocessableEntity,
		"VALIDATION_ERROR", "Some fields need attention", fieldErrs)
	return true
}

// List godoc: GET /addresses
func (h *AddressHandler) List(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	items, err := h.addresses.List(c.Request.Context(), id)
	if err != nil {
		response.FromGatewayError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Create godoc: POST /addresses
//
// A gateway failure still answers with the staged item so the dialog can
// show it parked in stage_failed with the server's message.
func (h *AddressHandler) Create(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	var form address.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.addresses.Create(c.Request.Context(), id, &form)
	if err != nil {
		if respondFormErrors(c, err) {
			return
		}
		status, message, code := gateway.MapErrorToHTTP(err)
		response.ErrorWithDetails(c, status, code, message, gin.H{"item": item})
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// Update godoc: PUT /addresses/:id
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	var form address.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.addresses.Update(c.Request.Context(), id, c.Param("id"), &form)
	if err != nil {
		if respondFormErrors(c, err) {
			return
		}
		response.FromGatewayError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// Delete godoc: DELETE /addresses/:id
//
// The remaining collection comes back so the view can re-render without a
// second round trip; a promoted default is already reflected in it.
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	items, err := h.addresses.Delete(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		status, message, code := gateway.MapErrorToHTTP(err)
		response.ErrorWithDetails(c, status, code, message, gin.H{"items": items})
		return
	}
	response.Success(c, http.StatusOK, items)
}

// SetDefault godoc: PUT /addresses/:id/default
func (h *AddressHandler) SetDefault(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	items, err := h.addresses.SetDefault(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		status, message, code := gateway.MapErrorToHTTP(err)
		response.ErrorWithDetails(c, status, code, message, gin.H{"items": items})
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Lookup godoc: GET /cep/:code
//
// An incomplete code answers 204: the dialog keeps whatever the user
// typed and nothing is treated as an error while they are still typing.
func (h *AddressHandler) Lookup(c *gin.Context) {
	result, err := h.addresses.Lookup(c.Request.Context(), c.GetString("client_id"), c.Param("code"))
	if err != nil {
		if cep.IsLookupMiss(err) {
			response.ErrorResponse(c, http.StatusNotFound, "CEP_NOT_FOUND", err.Error())
			return
		}
		response.ErrorResponse(c, http.StatusBadGateway, "CEP_LOOKUP_FAILED",
			"The postal code service is unavailable")
		return
	}
	if result == nil {
		c.Status(http.StatusNoContent)
		return
	}
	response.Success(c, http.StatusOK, result)
}
