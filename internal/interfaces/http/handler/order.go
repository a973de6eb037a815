package handler

import (
	restaurantapp "github.com/gestion/backend/internal/application/restaurant"
	"github.com/gestion/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// orderManagePermission lets supervisors act on orders they did not open
const orderManagePermission = "restaurant:order:manage"

// OrderHandler handles restaurant order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *restaurantapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *restaurantapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Open godoc
// @Summary      Open order
// @Description  Open an order on a free table or from a confirmed reservation
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body restaurantapp.OpenOrderRequest true "Order opening request"
// @Success      201 {object} dto.Response{data=restaurantapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/orders [post]
func (h *OrderHandler) Open(c *gin.Context) {
	var req restaurantapp.OpenOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	waiterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.WaiterID = waiterID

	order, err := h.orderService.Open(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID godoc
// @Summary      Get order by ID
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        table_id query string false "Table ID" format(uuid)
// @Param        waiter_id query string false "Waiter ID" format(uuid)
// @Param        status query string false "Order status" Enums(open, closed, cancelled)
// @Success      200 {object} dto.Response{data=[]restaurantapp.OrderResponse}
// @Security     BearerAuth
// @Router       /restaurant/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter restaurantapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.Page, filter.PageSize = paginationDefaults(filter.Page, filter.PageSize)

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// AddItem godoc
// @Summary      Add order item
// @Description  Add an article to the order, reserving stock for tracked products
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body restaurantapp.AddOrderItemRequest true "Item to add"
// @Success      200 {object} dto.Response{data=restaurantapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/orders/{id}/items [post]
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req restaurantapp.AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.ActedBy = actedBy
	req.CanManage = middleware.HasPermission(c, orderManagePermission)

	order, err := h.orderService.AddItem(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// CancelItem godoc
// @Summary      Cancel order item
// @Description  Remove a pending item and release its stock reservation
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        itemId path string true "Item ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/orders/{id}/items/{itemId}/cancel [post]
func (h *OrderHandler) CancelItem(c *gin.Context) {
	orderID, itemID, req, ok := h.itemAction(c)
	if !ok {
		return
	}

	order, err := h.orderService.CancelItem(c.Request.Context(), orderID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// MarkItemPreparing godoc
// @Summary      Mark item as preparing
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        itemId path string true "Item ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/orders/{id}/items/{itemId}/preparing [post]
func (h *OrderHandler) MarkItemPreparing(c *gin.Context) {
	orderID, itemID, req, ok := h.itemAction(c)
	if !ok {
		return
	}

	order, err := h.orderService.MarkItemPreparing(c.Request.Context(), orderID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// MarkItemServed godoc
// @Summary      Mark item as served
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        itemId path string true "Item ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/orders/{id}/items/{itemId}/served [post]
func (h *OrderHandler) MarkItemServed(c *gin.Context) {
	orderID, itemID, req, ok := h.itemAction(c)
	if !ok {
		return
	}

	order, err := h.orderService.MarkItemServed(c.Request.Context(), orderID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Close godoc
// @Summary      Close order
// @Description  Bill the order into an issued invoice and free the table
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body restaurantapp.CloseOrderRequest true "Billing details"
// @Success      200 {object} dto.Response{data=restaurantapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/orders/{id}/close [post]
func (h *OrderHandler) Close(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req restaurantapp.CloseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.ActedBy = actedBy
	req.CanManage = middleware.HasPermission(c, orderManagePermission)

	order, err := h.orderService.Close(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel godoc
// @Summary      Cancel order
// @Description  Void the whole order and release every stock reservation
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body restaurantapp.CancelOrderRequest true "Cancellation reason"
// @Success      200 {object} dto.Response{data=restaurantapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req restaurantapp.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.ActedBy = actedBy
	req.CanManage = middleware.HasPermission(c, orderManagePermission)

	order, err := h.orderService.Cancel(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// itemAction parses the order and item IDs and fills the acting user.
// It writes the error response itself when parsing fails.
func (h *OrderHandler) itemAction(c *gin.Context) (orderID, itemID uuid.UUID, req restaurantapp.OrderItemActionRequest, ok bool) {
	oid, valid := parseUUIDParam(c, "id")
	if !valid {
		h.BadRequest(c, "Invalid order ID format")
		return
	}
	iid, valid := parseUUIDParam(c, "itemId")
	if !valid {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	actedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req.ActedBy = actedBy
	req.CanManage = middleware.HasPermission(c, orderManagePermission)
	return oid, iid, req, true
}
