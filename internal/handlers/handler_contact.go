package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vkravets/contacts_api/internal/apperrors"
	portssvc "github.com/vkravets/contacts_api/internal/core/ports/services"
	"github.com/vkravets/contacts_api/internal/dto"
	"github.com/vkravets/contacts_api/internal/middleware"
)

// contactHandler handles HTTP requests related to contacts.
type contactHandler struct {
	contactService portssvc.ContactSvcFacade
}

func newContactHandler(cs portssvc.ContactSvcFacade) *contactHandler {
	return &contactHandler{contactService: cs}
}

// registerContactRoutes registers all contact-related routes.
func registerContactRoutes(rg *gin.RouterGroup, contactService portssvc.ContactSvcFacade) {
	h := newContactHandler(contactService)

	contacts := rg.Group("/contacts")
	{
		contacts.GET("", h.listContacts)
		contacts.POST("", h.createContact)
		contacts.GET("/search", h.searchContacts)
		contacts.GET("/birthdays", h.upcomingBirthdays)
		contacts.GET("/:id", h.getContact)
		contacts.PUT("/:id", h.updateContact)
		contacts.DELETE("/:id", h.deleteContact)
	}
}

// listContacts godoc
// @Summary List contacts
// @Description Lists the authenticated user's contacts.
// @Tags contacts
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.ContactResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /contacts [get]
func (h *contactHandler) listContacts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := middleware.GetCurrentUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListContactsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), user.UserID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list contacts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list contacts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToContactListResponse(contacts))
}

// createContact godoc
// @Summary Create contact
// @Description Creates a contact in the authenticated user's address book.
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body dto.ContactRequest true "Contact details"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /contacts [post]
func (h *contactHandler) createContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := middleware.GetCurrentUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), user.UserID, req)
	if err != nil {
		logger.Error("Failed to create contact", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create contact"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}

// getContact godoc
// @Summary Get contact
// @Description Retrieves a single contact by ID.
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} dto.ContactResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /contacts/{id} [get]
func (h *contactHandler) getContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := middleware.GetCurrentUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	contact, err := h.contactService.GetContact(c.Request.Context(), user.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
			return
		}
		logger.Error("Failed to get contact", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get contact"})
		return
	}

	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// updateContact godoc
// @Summary Update contact
// @Description Replaces all fields of an existing contact.
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param contact body dto.ContactRequest true "Contact details"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /contacts/{id} [put]
func (h *contactHandler) updateContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := middleware.GetCurrentUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), user.UserID, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
			return
		}
		logger.Error("Failed to update contact", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update contact"})
		return
	}

	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// deleteContact godoc
// @Summary Delete contact
// @Description Removes a contact from the address book.
// @Tags contacts
// @Param id path string true "Contact ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /contacts/{id} [delete]
func (h *contactHandler) deleteContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := middleware.GetCurrentUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), user.UserID, c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
			return
		}
		logger.Error("Failed to delete contact", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete contact"})
		return
	}

	c.Status(http.StatusNoContent)
}

// searchContacts godoc
// @Summary Search contacts
// @Description Finds contacts by first name, last name or email (first criterion wins).
// @Tags contacts
// @Produce json
// @Param firstName query string false "First name"
// @Param lastName query string false "Last name"
// @Param email query string false "Email"
// @Success 200 {array} dto.ContactResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /contacts/search [get]
func (h *contactHandler) searchContacts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := middleware.GetCurrentUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.SearchContactsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	contacts, err := h.contactService.SearchContacts(c.Request.Context(), user.UserID, params)
	if err != nil {
		logger.Error("Failed to search contacts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to search contacts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToContactListResponse(contacts))
}

// upcomingBirthdays godoc
// @Summary Upcoming birthdays
// @Description Lists contacts with a birthday in the next 7 days (today included).
// @Tags contacts
// @Produce json
// @Success 200 {array} dto.ContactResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /contacts/birthdays [get]
func (h *contactHandler) upcomingBirthdays(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := middleware.GetCurrentUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	contacts, err := h.contactService.UpcomingBirthdays(c.Request.Context(), user.UserID)
	if err != nil {
		logger.Error("Failed to compute upcoming birthdays", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute upcoming birthdays"})
		return
	}

	c.JSON(http.StatusOK, dto.ToContactListResponse(contacts))
}
