package handler

import (
	restaurantapp "github.com/gestion/backend/internal/application/restaurant"
	"github.com/gin-gonic/gin"
)

// ZoneHandler handles dining zone endpoints
type ZoneHandler struct {
	BaseHandler
	zoneService *restaurantapp.ZoneService
}

// NewZoneHandler creates a new ZoneHandler
func NewZoneHandler(zoneService *restaurantapp.ZoneService) *ZoneHandler {
	return &ZoneHandler{zoneService: zoneService}
}

// Create godoc
// @Summary      Create zone
// @Tags         zones
// @Accept       json
// @Produce      json
// @Param        request body restaurantapp.CreateZoneRequest true "Zone creation request"
// @Success      201 {object} dto.Response{data=restaurantapp.ZoneResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/zones [post]
func (h *ZoneHandler) Create(c *gin.Context) {
	var req restaurantapp.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	zone, err := h.zoneService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, zone)
}

// GetByID godoc
// @Summary      Get zone by ID
// @Tags         zones
// @Produce      json
// @Param        id path string true "Zone ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.ZoneResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/zones/{id} [get]
func (h *ZoneHandler) GetByID(c *gin.Context) {
	zoneID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	zone, err := h.zoneService.GetByID(c.Request.Context(), zoneID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, zone)
}

// List godoc
// @Summary      List zones
// @Tags         zones
// @Produce      json
// @Success      200 {object} dto.Response{data=[]restaurantapp.ZoneResponse}
// @Security     BearerAuth
// @Router       /restaurant/zones [get]
func (h *ZoneHandler) List(c *gin.Context) {
	zones, err := h.zoneService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, zones)
}

// Update godoc
// @Summary      Update zone
// @Tags         zones
// @Accept       json
// @Produce      json
// @Param        id path string true "Zone ID" format(uuid)
// @Param        request body restaurantapp.UpdateZoneRequest true "Zone update request"
// @Success      200 {object} dto.Response{data=restaurantapp.ZoneResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/zones/{id} [put]
func (h *ZoneHandler) Update(c *gin.Context) {
	zoneID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	var req restaurantapp.UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	zone, err := h.zoneService.Update(c.Request.Context(), zoneID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, zone)
}

// Activate godoc
// @Summary      Activate zone
// @Tags         zones
// @Produce      json
// @Param        id path string true "Zone ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /restaurant/zones/{id}/activate [post]
func (h *ZoneHandler) Activate(c *gin.Context) {
	zoneID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	if err := h.zoneService.Activate(c.Request.Context(), zoneID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"active": true})
}

// Deactivate godoc
// @Summary      Deactivate zone
// @Tags         zones
// @Produce      json
// @Param        id path string true "Zone ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/zones/{id}/deactivate [post]
func (h *ZoneHandler) Deactivate(c *gin.Context) {
	zoneID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	if err := h.zoneService.Deactivate(c.Request.Context(), zoneID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"active": false})
}

// Delete godoc
// @Summary      Delete zone
// @Tags         zones
// @Param        id path string true "Zone ID" format(uuid)
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/zones/{id} [delete]
func (h *ZoneHandler) Delete(c *gin.Context) {
	zoneID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	if err := h.zoneService.Delete(c.Request.Context(), zoneID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// TableHandler handles dining table endpoints
type TableHandler struct {
	BaseHandler
	tableService *restaurantapp.TableService
}

// NewTableHandler creates a new TableHandler
func NewTableHandler(tableService *restaurantapp.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

// Create godoc
// @Summary      Create table
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        request body restaurantapp.CreateTableRequest true "Table creation request"
// @Success      201 {object} dto.Response{data=restaurantapp.TableResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/tables [post]
func (h *TableHandler) Create(c *gin.Context) {
	var req restaurantapp.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	table, err := h.tableService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, table)
}

// GetByID godoc
// @Summary      Get table by ID
// @Tags         tables
// @Produce      json
// @Param        id path string true "Table ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.TableResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/tables/{id} [get]
func (h *TableHandler) GetByID(c *gin.Context) {
	tableID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	table, err := h.tableService.GetByID(c.Request.Context(), tableID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, table)
}

// List godoc
// @Summary      List tables
// @Description  All tables, optionally narrowed by zone or status
// @Tags         tables
// @Produce      json
// @Param        zone_id query string false "Zone ID" format(uuid)
// @Param        status query string false "Table status" Enums(free, held, occupied, out_of_service)
// @Success      200 {object} dto.Response{data=[]restaurantapp.TableResponse}
// @Security     BearerAuth
// @Router       /restaurant/tables [get]
func (h *TableHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if zoneStr := c.Query("zone_id"); zoneStr != "" {
		zoneID, ok := parseUUIDQuery(c, "zone_id")
		if !ok {
			h.BadRequest(c, "Invalid zone ID format")
			return
		}
		tables, err := h.tableService.ListByZone(ctx, zoneID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, tables)
		return
	}

	if status := c.Query("status"); status != "" {
		tables, err := h.tableService.ListByStatus(ctx, status)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, tables)
		return
	}

	tables, err := h.tableService.List(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tables)
}

// Update godoc
// @Summary      Update table
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        id path string true "Table ID" format(uuid)
// @Param        request body restaurantapp.UpdateTableRequest true "Table update request"
// @Success      200 {object} dto.Response{data=restaurantapp.TableResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/tables/{id} [put]
func (h *TableHandler) Update(c *gin.Context) {
	tableID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	var req restaurantapp.UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	table, err := h.tableService.Update(c.Request.Context(), tableID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, table)
}

// TakeOutOfService godoc
// @Summary      Take table out of service
// @Tags         tables
// @Produce      json
// @Param        id path string true "Table ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.TableResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/tables/{id}/out-of-service [post]
func (h *TableHandler) TakeOutOfService(c *gin.Context) {
	tableID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	table, err := h.tableService.TakeOutOfService(c.Request.Context(), tableID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, table)
}

// ReturnToService godoc
// @Summary      Return table to service
// @Tags         tables
// @Produce      json
// @Param        id path string true "Table ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.TableResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/tables/{id}/return-to-service [post]
func (h *TableHandler) ReturnToService(c *gin.Context) {
	tableID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	table, err := h.tableService.ReturnToService(c.Request.Context(), tableID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, table)
}

// Delete godoc
// @Summary      Delete table
// @Tags         tables
// @Param        id path string true "Table ID" format(uuid)
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/tables/{id} [delete]
func (h *TableHandler) Delete(c *gin.Context) {
	tableID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	if err := h.tableService.Delete(c.Request.Context(), tableID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
