package handler

import (
	inventoryapp "github.com/gestion/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// WarehouseHandler handles warehouse endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *inventoryapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *inventoryapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// Create godoc
// @Summary      Create warehouse
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateWarehouseRequest true "Warehouse creation request"
// @Success      201 {object} dto.Response{data=inventoryapp.WarehouseResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/warehouses [post]
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	warehouse, err := h.warehouseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, warehouse)
}

// GetByID godoc
// @Summary      Get warehouse by ID
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.WarehouseResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *gin.Context) {
	warehouseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	warehouse, err := h.warehouseService.GetByID(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// List godoc
// @Summary      List warehouses
// @Tags         warehouses
// @Produce      json
// @Success      200 {object} dto.Response{data=[]inventoryapp.WarehouseResponse}
// @Security     BearerAuth
// @Router       /inventory/warehouses [get]
func (h *WarehouseHandler) List(c *gin.Context) {
	warehouses, err := h.warehouseService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouses)
}

// Update godoc
// @Summary      Update warehouse
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Param        request body inventoryapp.UpdateWarehouseRequest true "Warehouse update request"
// @Success      200 {object} dto.Response{data=inventoryapp.WarehouseResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *gin.Context) {
	warehouseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	var req inventoryapp.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	warehouse, err := h.warehouseService.Update(c.Request.Context(), warehouseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// SetDefault godoc
// @Summary      Set default warehouse
// @Description  Make this warehouse the default target for movements without an explicit warehouse
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.WarehouseResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/warehouses/{id}/default [post]
func (h *WarehouseHandler) SetDefault(c *gin.Context) {
	warehouseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	warehouse, err := h.warehouseService.SetDefault(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// Activate godoc
// @Summary      Activate warehouse
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.WarehouseResponse}
// @Security     BearerAuth
// @Router       /inventory/warehouses/{id}/activate [post]
func (h *WarehouseHandler) Activate(c *gin.Context) {
	warehouseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	warehouse, err := h.warehouseService.Activate(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// Deactivate godoc
// @Summary      Deactivate warehouse
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.WarehouseResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/warehouses/{id}/deactivate [post]
func (h *WarehouseHandler) Deactivate(c *gin.Context) {
	warehouseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	warehouse, err := h.warehouseService.Deactivate(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// Delete godoc
// @Summary      Delete warehouse
// @Tags         warehouses
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(c *gin.Context) {
	warehouseID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	if err := h.warehouseService.Delete(c.Request.Context(), warehouseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
