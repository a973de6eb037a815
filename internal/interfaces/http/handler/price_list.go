package handler

import (
	"time"

	catalogapp "github.com/gestion/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// PriceListHandler handles price list endpoints
type PriceListHandler struct {
	BaseHandler
	priceListService *catalogapp.PriceListService
}

// NewPriceListHandler creates a new PriceListHandler
func NewPriceListHandler(priceListService *catalogapp.PriceListService) *PriceListHandler {
	return &PriceListHandler{priceListService: priceListService}
}

// Create godoc
// @Summary      Create price list
// @Tags         price-lists
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreatePriceListRequest true "Price list creation request"
// @Success      201 {object} dto.Response{data=catalogapp.PriceListResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/price-lists [post]
func (h *PriceListHandler) Create(c *gin.Context) {
	var req catalogapp.CreatePriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	list, err := h.priceListService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, list)
}

// GetByID godoc
// @Summary      Get price list by ID
// @Tags         price-lists
// @Produce      json
// @Param        id path string true "Price list ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.PriceListResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/price-lists/{id} [get]
func (h *PriceListHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid price list ID format")
		return
	}

	list, err := h.priceListService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// List godoc
// @Summary      List price lists
// @Tags         price-lists
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.PriceListResponse}
// @Security     BearerAuth
// @Router       /catalog/price-lists [get]
func (h *PriceListHandler) List(c *gin.Context) {
	lists, err := h.priceListService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lists)
}

// SetPrice godoc
// @Summary      Set article price
// @Description  Set or replace the price of an article in the list
// @Tags         price-lists
// @Accept       json
// @Produce      json
// @Param        id path string true "Price list ID" format(uuid)
// @Param        request body catalogapp.SetPriceRequest true "Price entry"
// @Success      200 {object} dto.Response{data=catalogapp.PriceListResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/price-lists/{id}/prices [put]
func (h *PriceListHandler) SetPrice(c *gin.Context) {
	listID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid price list ID format")
		return
	}

	var req catalogapp.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	list, err := h.priceListService.SetPrice(c.Request.Context(), listID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// RemovePrice godoc
// @Summary      Remove article price
// @Tags         price-lists
// @Produce      json
// @Param        id path string true "Price list ID" format(uuid)
// @Param        articleId path string true "Article ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.PriceListResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/price-lists/{id}/prices/{articleId} [delete]
func (h *PriceListHandler) RemovePrice(c *gin.Context) {
	listID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid price list ID format")
		return
	}
	articleID, ok := parseUUIDParam(c, "articleId")
	if !ok {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	list, err := h.priceListService.RemovePrice(c.Request.Context(), listID, articleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// Activate godoc
// @Summary      Activate price list
// @Tags         price-lists
// @Produce      json
// @Param        id path string true "Price list ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.PriceListResponse}
// @Security     BearerAuth
// @Router       /catalog/price-lists/{id}/activate [post]
func (h *PriceListHandler) Activate(c *gin.Context) {
	listID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid price list ID format")
		return
	}

	list, err := h.priceListService.Activate(c.Request.Context(), listID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// Deactivate godoc
// @Summary      Deactivate price list
// @Tags         price-lists
// @Produce      json
// @Param        id path string true "Price list ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.PriceListResponse}
// @Security     BearerAuth
// @Router       /catalog/price-lists/{id}/deactivate [post]
func (h *PriceListHandler) Deactivate(c *gin.Context) {
	listID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid price list ID format")
		return
	}

	list, err := h.priceListService.Deactivate(c.Request.Context(), listID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// Delete godoc
// @Summary      Delete price list
// @Tags         price-lists
// @Param        id path string true "Price list ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/price-lists/{id} [delete]
func (h *PriceListHandler) Delete(c *gin.Context) {
	listID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid price list ID format")
		return
	}

	if err := h.priceListService.Delete(c.Request.Context(), listID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ResolvePrice godoc
// @Summary      Resolve article price
// @Description  Resolve the effective price of an article at a moment in time
// @Tags         price-lists
// @Produce      json
// @Param        articleId path string true "Article ID" format(uuid)
// @Param        at query string false "Resolution instant (RFC 3339), defaults to now"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/prices/{articleId} [get]
func (h *PriceListHandler) ResolvePrice(c *gin.Context) {
	articleID, ok := parseUUIDParam(c, "articleId")
	if !ok {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	at := time.Now()
	if atStr := c.Query("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			h.BadRequest(c, "Invalid at timestamp, expected RFC 3339")
			return
		}
		at = parsed
	}

	price, err := h.priceListService.ResolvePrice(c.Request.Context(), articleID, at)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"article_id": articleID,
		"at":         at,
		"price":      price,
	})
}
