package handler

import (
	inventoryapp "github.com/gestion/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockHandler handles stock movement and kardex endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// ReservationRequest reserves or releases stock for pending documents
type ReservationRequest struct {
	ArticleID   uuid.UUID       `json:"article_id" binding:"required"`
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

// RegisterEntry godoc
// @Summary      Register stock entry
// @Description  Post a receipt that increases on-hand stock and recomputes the weighted average cost
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.EntryRequest true "Entry request"
// @Success      201 {object} dto.Response{data=inventoryapp.MovementResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/stock/entries [post]
func (h *StockHandler) RegisterEntry(c *gin.Context) {
	var req inventoryapp.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.PostedBy = actedBy(c)

	movement, err := h.stockService.RegisterEntry(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// RegisterExit godoc
// @Summary      Register stock exit
// @Description  Post an issue that decreases on-hand stock at the current average cost
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.ExitRequest true "Exit request"
// @Success      201 {object} dto.Response{data=inventoryapp.MovementResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/stock/exits [post]
func (h *StockHandler) RegisterExit(c *gin.Context) {
	var req inventoryapp.ExitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.PostedBy = actedBy(c)

	movement, err := h.stockService.RegisterExit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// RegisterAdjustment godoc
// @Summary      Register stock adjustment
// @Description  Correct on-hand stock to a physically counted quantity
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.AdjustmentRequest true "Adjustment request"
// @Success      201 {object} dto.Response{data=inventoryapp.MovementResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/stock/adjustments [post]
func (h *StockHandler) RegisterAdjustment(c *gin.Context) {
	var req inventoryapp.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.PostedBy = actedBy(c)

	movement, err := h.stockService.RegisterAdjustment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// RegisterTransfer godoc
// @Summary      Register stock transfer
// @Description  Move stock between warehouses, producing one exit and one entry at the source average cost
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.TransferRequest true "Transfer request"
// @Success      201 {object} dto.Response{data=inventoryapp.TransferResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/stock/transfers [post]
func (h *StockHandler) RegisterTransfer(c *gin.Context) {
	var req inventoryapp.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.PostedBy = actedBy(c)

	transfer, err := h.stockService.RegisterTransfer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, transfer)
}

// Reserve godoc
// @Summary      Reserve stock
// @Description  Hold available stock for a pending document
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body ReservationRequest true "Reservation request"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/stock/reservations [post]
func (h *StockHandler) Reserve(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.stockService.Reserve(c.Request.Context(), req.ArticleID, req.WarehouseID, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"reserved": true})
}

// Release godoc
// @Summary      Release reserved stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body ReservationRequest true "Release request"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/stock/reservations/release [post]
func (h *StockHandler) Release(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.stockService.Release(c.Request.Context(), req.ArticleID, req.WarehouseID, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"released": true})
}

// GetStock godoc
// @Summary      Get stock position
// @Description  Stock position of one article in one warehouse
// @Tags         stock
// @Produce      json
// @Param        articleId path string true "Article ID" format(uuid)
// @Param        warehouseId path string true "Warehouse ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.StockResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/stock/{articleId}/warehouse/{warehouseId} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	articleID, ok := parseUUIDParam(c, "articleId")
	if !ok {
		h.BadRequest(c, "Invalid article ID format")
		return
	}
	warehouseID, ok := parseUUIDParam(c, "warehouseId")
	if !ok {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	stock, err := h.stockService.GetStock(c.Request.Context(), articleID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// GetArticleStock godoc
// @Summary      Get article stock across warehouses
// @Tags         stock
// @Produce      json
// @Param        articleId path string true "Article ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]inventoryapp.StockResponse}
// @Security     BearerAuth
// @Router       /inventory/stock/{articleId} [get]
func (h *StockHandler) GetArticleStock(c *gin.Context) {
	articleID, ok := parseUUIDParam(c, "articleId")
	if !ok {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	stock, err := h.stockService.GetArticleStock(c.Request.Context(), articleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// ListWarehouseStock godoc
// @Summary      List warehouse stock
// @Tags         stock
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search by article code or name"
// @Success      200 {object} dto.Response{data=[]inventoryapp.StockResponse}
// @Security     BearerAuth
// @Router       /inventory/warehouses/{id}/stock [get]
func (h *StockHandler) ListWarehouseStock(c *gin.Context) {
	warehouseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	var filter inventoryapp.StockListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.Page, filter.PageSize = paginationDefaults(filter.Page, filter.PageSize)

	stock, total, err := h.stockService.ListWarehouseStock(c.Request.Context(), warehouseID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, stock, total, filter.Page, filter.PageSize)
}

// Kardex godoc
// @Summary      Query kardex
// @Description  Movement history in posting order with running balances
// @Tags         stock
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        article_id query string false "Article ID" format(uuid)
// @Param        warehouse_id query string false "Warehouse ID" format(uuid)
// @Param        type query string false "Movement type" Enums(entry, exit, adjustment, transfer_in, transfer_out)
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Param        to query string false "To date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]inventoryapp.MovementResponse}
// @Security     BearerAuth
// @Router       /inventory/kardex [get]
func (h *StockHandler) Kardex(c *gin.Context) {
	var filter inventoryapp.KardexFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.Page, filter.PageSize = paginationDefaults(filter.Page, filter.PageSize)

	movements, total, err := h.stockService.Kardex(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}
