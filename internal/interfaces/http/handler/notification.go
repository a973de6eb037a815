package handler

import (
	notificationapp "github.com/gestion/backend/internal/application/notification"
	"github.com/gin-gonic/gin"
)

// ChannelHandler handles notification channel endpoints
type ChannelHandler struct {
	BaseHandler
	channelService *notificationapp.ChannelService
}

// NewChannelHandler creates a new ChannelHandler
func NewChannelHandler(channelService *notificationapp.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

// Create godoc
// @Summary      Create notification channel
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        request body notificationapp.CreateChannelRequest true "Channel creation request"
// @Success      201 {object} dto.Response{data=notificationapp.ChannelResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notifications/channels [post]
func (h *ChannelHandler) Create(c *gin.Context) {
	var req notificationapp.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	channel, err := h.channelService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, channel)
}

// GetByID godoc
// @Summary      Get channel by ID
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Channel ID" format(uuid)
// @Success      200 {object} dto.Response{data=notificationapp.ChannelResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notifications/channels/{id} [get]
func (h *ChannelHandler) GetByID(c *gin.Context) {
	channelID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid channel ID format")
		return
	}

	channel, err := h.channelService.GetByID(c.Request.Context(), channelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, channel)
}

// List godoc
// @Summary      List channels
// @Tags         notifications
// @Produce      json
// @Success      200 {object} dto.Response{data=[]notificationapp.ChannelResponse}
// @Security     BearerAuth
// @Router       /notifications/channels [get]
func (h *ChannelHandler) List(c *gin.Context) {
	channels, err := h.channelService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, channels)
}

// Update godoc
// @Summary      Update channel
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        id path string true "Channel ID" format(uuid)
// @Param        request body notificationapp.UpdateChannelRequest true "Channel update request"
// @Success      200 {object} dto.Response{data=notificationapp.ChannelResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notifications/channels/{id} [put]
func (h *ChannelHandler) Update(c *gin.Context) {
	channelID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid channel ID format")
		return
	}

	var req notificationapp.UpdateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	channel, err := h.channelService.Update(c.Request.Context(), channelID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, channel)
}

// Subscribe godoc
// @Summary      Subscribe to event kind
// @Description  Add an event kind to the channel's subscription set
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        id path string true "Channel ID" format(uuid)
// @Param        request body notificationapp.SubscriptionRequest true "Subscription"
// @Success      200 {object} dto.Response{data=notificationapp.ChannelResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notifications/channels/{id}/subscriptions [post]
func (h *ChannelHandler) Subscribe(c *gin.Context) {
	channelID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid channel ID format")
		return
	}

	var req notificationapp.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	channel, err := h.channelService.Subscribe(c.Request.Context(), channelID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, channel)
}

// Unsubscribe godoc
// @Summary      Unsubscribe from event kind
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        id path string true "Channel ID" format(uuid)
// @Param        request body notificationapp.SubscriptionRequest true "Subscription"
// @Success      200 {object} dto.Response{data=notificationapp.ChannelResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notifications/channels/{id}/subscriptions/remove [post]
func (h *ChannelHandler) Unsubscribe(c *gin.Context) {
	channelID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid channel ID format")
		return
	}

	var req notificationapp.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	channel, err := h.channelService.Unsubscribe(c.Request.Context(), channelID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, channel)
}

// Activate godoc
// @Summary      Activate channel
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Channel ID" format(uuid)
// @Success      200 {object} dto.Response{data=notificationapp.ChannelResponse}
// @Security     BearerAuth
// @Router       /notifications/channels/{id}/activate [post]
func (h *ChannelHandler) Activate(c *gin.Context) {
	channelID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid channel ID format")
		return
	}

	channel, err := h.channelService.Activate(c.Request.Context(), channelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, channel)
}

// Deactivate godoc
// @Summary      Deactivate channel
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Channel ID" format(uuid)
// @Success      200 {object} dto.Response{data=notificationapp.ChannelResponse}
// @Security     BearerAuth
// @Router       /notifications/channels/{id}/deactivate [post]
func (h *ChannelHandler) Deactivate(c *gin.Context) {
	channelID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid channel ID format")
		return
	}

	channel, err := h.channelService.Deactivate(c.Request.Context(), channelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, channel)
}

// Delete godoc
// @Summary      Delete channel
// @Tags         notifications
// @Param        id path string true "Channel ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /notifications/channels/{id} [delete]
func (h *ChannelHandler) Delete(c *gin.Context) {
	channelID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid channel ID format")
		return
	}

	if err := h.channelService.Delete(c.Request.Context(), channelID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deliveries godoc
// @Summary      List channel deliveries
// @Description  Delivery log for one channel, most recent first
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Channel ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]notificationapp.DeliveryLogResponse}
// @Security     BearerAuth
// @Router       /notifications/channels/{id}/deliveries [get]
func (h *ChannelHandler) Deliveries(c *gin.Context) {
	channelID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid channel ID format")
		return
	}

	page, pageSize := paginationDefaults(queryInt(c, "page"), queryInt(c, "page_size"))

	deliveries, err := h.channelService.Deliveries(c.Request.Context(), channelID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, deliveries)
}
