package handler

import (
	restaurantapp "github.com/gestion/backend/internal/application/restaurant"
	"github.com/gin-gonic/gin"
)

// ReservationHandler handles table reservation endpoints
type ReservationHandler struct {
	BaseHandler
	reservationService *restaurantapp.ReservationService
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(reservationService *restaurantapp.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// CancelReservationRequest carries the cancellation reason
type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

// Create godoc
// @Summary      Create reservation
// @Description  Book a table for a party at a future time
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        request body restaurantapp.CreateReservationRequest true "Reservation request"
// @Success      201 {object} dto.Response{data=restaurantapp.ReservationResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req restaurantapp.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.reservationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, reservation)
}

// GetByID godoc
// @Summary      Get reservation by ID
// @Tags         reservations
// @Produce      json
// @Param        id path string true "Reservation ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.ReservationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/reservations/{id} [get]
func (h *ReservationHandler) GetByID(c *gin.Context) {
	reservationID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid reservation ID format")
		return
	}

	reservation, err := h.reservationService.GetByID(c.Request.Context(), reservationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reservation)
}

// List godoc
// @Summary      List reservations
// @Tags         reservations
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        table_id query string false "Table ID" format(uuid)
// @Param        status query string false "Reservation status" Enums(pending, confirmed, seated, cancelled, no_show)
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Param        to query string false "To date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]restaurantapp.ReservationResponse}
// @Security     BearerAuth
// @Router       /restaurant/reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	var filter restaurantapp.ReservationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.Page, filter.PageSize = paginationDefaults(filter.Page, filter.PageSize)

	reservations, total, err := h.reservationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, reservations, total, filter.Page, filter.PageSize)
}

// Confirm godoc
// @Summary      Confirm reservation
// @Description  Confirm a pending reservation and hold its table
// @Tags         reservations
// @Produce      json
// @Param        id path string true "Reservation ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.ReservationResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/reservations/{id}/confirm [post]
func (h *ReservationHandler) Confirm(c *gin.Context) {
	reservationID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid reservation ID format")
		return
	}

	reservation, err := h.reservationService.Confirm(c.Request.Context(), reservationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reservation)
}

// Cancel godoc
// @Summary      Cancel reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id path string true "Reservation ID" format(uuid)
// @Param        request body CancelReservationRequest false "Cancellation reason"
// @Success      200 {object} dto.Response{data=restaurantapp.ReservationResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	reservationID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid reservation ID format")
		return
	}

	var req CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.reservationService.Cancel(c.Request.Context(), reservationID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reservation)
}

// MarkNoShow godoc
// @Summary      Mark reservation as no-show
// @Description  Record that the party never arrived and free the held table
// @Tags         reservations
// @Produce      json
// @Param        id path string true "Reservation ID" format(uuid)
// @Success      200 {object} dto.Response{data=restaurantapp.ReservationResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /restaurant/reservations/{id}/no-show [post]
func (h *ReservationHandler) MarkNoShow(c *gin.Context) {
	reservationID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid reservation ID format")
		return
	}

	reservation, err := h.reservationService.MarkNoShow(c.Request.Context(), reservationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reservation)
}
