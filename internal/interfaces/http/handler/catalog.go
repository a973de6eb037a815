package handler

import (
	catalogapp "github.com/gestion/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// UnitHandler handles measurement unit endpoints
type UnitHandler struct {
	BaseHandler
	unitService *catalogapp.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService *catalogapp.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// Create godoc
// @Summary      Create unit
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateUnitRequest true "Unit creation request"
// @Success      201 {object} dto.Response{data=catalogapp.UnitResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	var req catalogapp.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unit, err := h.unitService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, unit)
}

// GetByCode godoc
// @Summary      Get unit by code
// @Tags         units
// @Produce      json
// @Param        code path string true "Unit code"
// @Success      200 {object} dto.Response{data=catalogapp.UnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/units/{code} [get]
func (h *UnitHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Unit code is required")
		return
	}

	unit, err := h.unitService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// List godoc
// @Summary      List units
// @Tags         units
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.UnitResponse}
// @Security     BearerAuth
// @Router       /catalog/units [get]
func (h *UnitHandler) List(c *gin.Context) {
	units, err := h.unitService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, units)
}

// Update godoc
// @Summary      Update unit
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        id path string true "Unit ID" format(uuid)
// @Param        request body catalogapp.UpdateUnitRequest true "Unit update request"
// @Success      200 {object} dto.Response{data=catalogapp.UnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/units/{id} [put]
func (h *UnitHandler) Update(c *gin.Context) {
	unitID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	var req catalogapp.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unit, err := h.unitService.Update(c.Request.Context(), unitID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// Delete godoc
// @Summary      Delete unit
// @Tags         units
// @Param        id path string true "Unit ID" format(uuid)
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/units/{id} [delete]
func (h *UnitHandler) Delete(c *gin.Context) {
	unitID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	if err := h.unitService.Delete(c.Request.Context(), unitID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ClassificationHandler handles catalog classification endpoints
type ClassificationHandler struct {
	BaseHandler
	classificationService *catalogapp.ClassificationService
}

// NewClassificationHandler creates a new ClassificationHandler
func NewClassificationHandler(classificationService *catalogapp.ClassificationService) *ClassificationHandler {
	return &ClassificationHandler{classificationService: classificationService}
}

// Create godoc
// @Summary      Create classification
// @Description  Create a category in the article classification tree
// @Tags         classifications
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateClassificationRequest true "Classification creation request"
// @Success      201 {object} dto.Response{data=catalogapp.ClassificationResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/classifications [post]
func (h *ClassificationHandler) Create(c *gin.Context) {
	var req catalogapp.CreateClassificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	classification, err := h.classificationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, classification)
}

// GetByID godoc
// @Summary      Get classification by ID
// @Tags         classifications
// @Produce      json
// @Param        id path string true "Classification ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ClassificationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/classifications/{id} [get]
func (h *ClassificationHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid classification ID format")
		return
	}

	classification, err := h.classificationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, classification)
}

// List godoc
// @Summary      List classifications
// @Tags         classifications
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.ClassificationResponse}
// @Security     BearerAuth
// @Router       /catalog/classifications [get]
func (h *ClassificationHandler) List(c *gin.Context) {
	classifications, err := h.classificationService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, classifications)
}

// GetChildren godoc
// @Summary      List child classifications
// @Tags         classifications
// @Produce      json
// @Param        id path string true "Parent classification ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.ClassificationResponse}
// @Security     BearerAuth
// @Router       /catalog/classifications/{id}/children [get]
func (h *ClassificationHandler) GetChildren(c *gin.Context) {
	parentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid classification ID format")
		return
	}

	children, err := h.classificationService.GetChildren(c.Request.Context(), parentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, children)
}

// Update godoc
// @Summary      Update classification
// @Tags         classifications
// @Accept       json
// @Produce      json
// @Param        id path string true "Classification ID" format(uuid)
// @Param        request body catalogapp.UpdateClassificationRequest true "Classification update request"
// @Success      200 {object} dto.Response{data=catalogapp.ClassificationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/classifications/{id} [put]
func (h *ClassificationHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid classification ID format")
		return
	}

	var req catalogapp.UpdateClassificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	classification, err := h.classificationService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, classification)
}

// Delete godoc
// @Summary      Delete classification
// @Tags         classifications
// @Param        id path string true "Classification ID" format(uuid)
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/classifications/{id} [delete]
func (h *ClassificationHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid classification ID format")
		return
	}

	if err := h.classificationService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
