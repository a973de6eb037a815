package handler

import (
	catalogapp "github.com/gestion/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ArticleHandler handles article catalog endpoints
type ArticleHandler struct {
	BaseHandler
	articleService *catalogapp.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articleService *catalogapp.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// Create godoc
// @Summary      Create article
// @Description  Create a product, service or kit in the catalog
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateArticleRequest true "Article creation request"
// @Success      201 {object} dto.Response{data=catalogapp.ArticleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	var req catalogapp.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, article)
}

// GetByID godoc
// @Summary      Get article by ID
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ArticleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/articles/{id} [get]
func (h *ArticleHandler) GetByID(c *gin.Context) {
	articleID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	article, err := h.articleService.GetByID(c.Request.Context(), articleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// GetByCode godoc
// @Summary      Get article by code
// @Tags         articles
// @Produce      json
// @Param        code path string true "Article code"
// @Success      200 {object} dto.Response{data=catalogapp.ArticleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/articles/code/{code} [get]
func (h *ArticleHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Article code is required")
		return
	}

	article, err := h.articleService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// GetByBarcode godoc
// @Summary      Get article by barcode
// @Tags         articles
// @Produce      json
// @Param        barcode path string true "Article barcode"
// @Success      200 {object} dto.Response{data=catalogapp.ArticleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/articles/barcode/{barcode} [get]
func (h *ArticleHandler) GetByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		h.BadRequest(c, "Barcode is required")
		return
	}

	article, err := h.articleService.GetByBarcode(c.Request.Context(), barcode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// List godoc
// @Summary      List articles
// @Tags         articles
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search by code, name or barcode"
// @Param        type query string false "Article type" Enums(product, service, kit)
// @Param        status query string false "Article status" Enums(active, discontinued)
// @Success      200 {object} dto.Response{data=[]catalogapp.ArticleResponse}
// @Security     BearerAuth
// @Router       /catalog/articles [get]
func (h *ArticleHandler) List(c *gin.Context) {
	var filter catalogapp.ArticleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.Page, filter.PageSize = paginationDefaults(filter.Page, filter.PageSize)

	articles, total, err := h.articleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, articles, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Param        request body catalogapp.UpdateArticleRequest true "Article update request"
// @Success      200 {object} dto.Response{data=catalogapp.ArticleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/articles/{id} [put]
func (h *ArticleHandler) Update(c *gin.Context) {
	articleID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	var req catalogapp.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), articleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// AddComponent godoc
// @Summary      Add kit component
// @Description  Add a component article to a kit
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id path string true "Kit article ID" format(uuid)
// @Param        request body catalogapp.KitComponentRequest true "Component to add"
// @Success      200 {object} dto.Response{data=catalogapp.ArticleResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/articles/{id}/components [post]
func (h *ArticleHandler) AddComponent(c *gin.Context) {
	kitID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	var req catalogapp.KitComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.AddComponent(c.Request.Context(), kitID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// RemoveComponent godoc
// @Summary      Remove kit component
// @Tags         articles
// @Produce      json
// @Param        id path string true "Kit article ID" format(uuid)
// @Param        componentId path string true "Component article ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ArticleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/articles/{id}/components/{componentId} [delete]
func (h *ArticleHandler) RemoveComponent(c *gin.Context) {
	kitID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid article ID format")
		return
	}
	componentID, ok := parseUUIDParam(c, "componentId")
	if !ok {
		h.BadRequest(c, "Invalid component ID format")
		return
	}

	article, err := h.articleService.RemoveComponent(c.Request.Context(), kitID, componentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// Discontinue godoc
// @Summary      Discontinue article
// @Description  Mark the article as discontinued so it cannot be sold
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ArticleResponse}
// @Security     BearerAuth
// @Router       /catalog/articles/{id}/discontinue [post]
func (h *ArticleHandler) Discontinue(c *gin.Context) {
	articleID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	article, err := h.articleService.Discontinue(c.Request.Context(), articleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// Reactivate godoc
// @Summary      Reactivate article
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ArticleResponse}
// @Security     BearerAuth
// @Router       /catalog/articles/{id}/reactivate [post]
func (h *ArticleHandler) Reactivate(c *gin.Context) {
	articleID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	article, err := h.articleService.Reactivate(c.Request.Context(), articleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// Delete godoc
// @Summary      Delete article
// @Tags         articles
// @Param        id path string true "Article ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/articles/{id} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	articleID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), articleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
