package handler

import (
	"time"

	receivableapp "github.com/gestion/backend/internal/application/receivable"
	"github.com/gin-gonic/gin"
)

// CollectionHandler handles collection follow-up endpoints
type CollectionHandler struct {
	BaseHandler
	collectionService *receivableapp.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(collectionService *receivableapp.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// LogContact godoc
// @Summary      Log collection contact
// @Description  Record a contact with a customer about outstanding debt
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        request body receivableapp.LogContactRequest true "Contact log"
// @Success      201 {object} dto.Response{data=receivableapp.CollectionLogResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/collections [post]
func (h *CollectionHandler) LogContact(c *gin.Context) {
	var req receivableapp.LogContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.ContactedBy = actedBy(c)

	log, err := h.collectionService.LogContact(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, log)
}

// ListByCustomer godoc
// @Summary      List contacts by customer
// @Tags         collections
// @Produce      json
// @Param        customerId path string true "Customer ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]receivableapp.CollectionLogResponse}
// @Security     BearerAuth
// @Router       /receivables/customers/{customerId}/collections [get]
func (h *CollectionHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "customerId")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	page, pageSize := paginationDefaults(queryInt(c, "page"), queryInt(c, "page_size"))

	logs, err := h.collectionService.ListByCustomer(c.Request.Context(), customerID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, logs)
}

// ListByDocument godoc
// @Summary      List contacts by document
// @Tags         collections
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]receivableapp.CollectionLogResponse}
// @Security     BearerAuth
// @Router       /receivables/documents/{id}/collections [get]
func (h *CollectionHandler) ListByDocument(c *gin.Context) {
	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	logs, err := h.collectionService.ListByDocument(c.Request.Context(), documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, logs)
}

// PendingActions godoc
// @Summary      List pending follow-ups
// @Description  Contacts whose next action date falls on or before the cutoff
// @Tags         collections
// @Produce      json
// @Param        before query string false "Cutoff (RFC 3339), defaults to now"
// @Success      200 {object} dto.Response{data=[]receivableapp.CollectionLogResponse}
// @Security     BearerAuth
// @Router       /receivables/collections/pending [get]
func (h *CollectionHandler) PendingActions(c *gin.Context) {
	before := time.Now()
	if beforeStr := c.Query("before"); beforeStr != "" {
		parsed, err := time.Parse(time.RFC3339, beforeStr)
		if err != nil {
			h.BadRequest(c, "Invalid before timestamp, expected RFC 3339")
			return
		}
		before = parsed
	}

	logs, err := h.collectionService.PendingActions(c.Request.Context(), before)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, logs)
}
