package handler

import (
	"time"

	billingapp "github.com/gestion/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PaymentTermHandler handles payment term endpoints
type PaymentTermHandler struct {
	BaseHandler
	termService *billingapp.PaymentTermService
}

// NewPaymentTermHandler creates a new PaymentTermHandler
func NewPaymentTermHandler(termService *billingapp.PaymentTermService) *PaymentTermHandler {
	return &PaymentTermHandler{termService: termService}
}

// Create godoc
// @Summary      Create payment term
// @Tags         payment-terms
// @Accept       json
// @Produce      json
// @Param        request body billingapp.CreatePaymentTermRequest true "Payment term creation request"
// @Success      201 {object} dto.Response{data=billingapp.PaymentTermResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/payment-terms [post]
func (h *PaymentTermHandler) Create(c *gin.Context) {
	var req billingapp.CreatePaymentTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	term, err := h.termService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, term)
}

// GetByID godoc
// @Summary      Get payment term by ID
// @Tags         payment-terms
// @Produce      json
// @Param        id path string true "Payment term ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.PaymentTermResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/payment-terms/{id} [get]
func (h *PaymentTermHandler) GetByID(c *gin.Context) {
	termID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid payment term ID format")
		return
	}

	term, err := h.termService.GetByID(c.Request.Context(), termID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, term)
}

// List godoc
// @Summary      List payment terms
// @Tags         payment-terms
// @Produce      json
// @Success      200 {object} dto.Response{data=[]billingapp.PaymentTermResponse}
// @Security     BearerAuth
// @Router       /billing/payment-terms [get]
func (h *PaymentTermHandler) List(c *gin.Context) {
	terms, err := h.termService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, terms)
}

// Update godoc
// @Summary      Update payment term
// @Tags         payment-terms
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment term ID" format(uuid)
// @Param        request body billingapp.UpdatePaymentTermRequest true "Payment term update request"
// @Success      200 {object} dto.Response{data=billingapp.PaymentTermResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/payment-terms/{id} [put]
func (h *PaymentTermHandler) Update(c *gin.Context) {
	termID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid payment term ID format")
		return
	}

	var req billingapp.UpdatePaymentTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	term, err := h.termService.Update(c.Request.Context(), termID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, term)
}

// Activate godoc
// @Summary      Activate payment term
// @Tags         payment-terms
// @Produce      json
// @Param        id path string true "Payment term ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.PaymentTermResponse}
// @Security     BearerAuth
// @Router       /billing/payment-terms/{id}/activate [post]
func (h *PaymentTermHandler) Activate(c *gin.Context) {
	termID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid payment term ID format")
		return
	}

	term, err := h.termService.Activate(c.Request.Context(), termID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, term)
}

// Deactivate godoc
// @Summary      Deactivate payment term
// @Tags         payment-terms
// @Produce      json
// @Param        id path string true "Payment term ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.PaymentTermResponse}
// @Security     BearerAuth
// @Router       /billing/payment-terms/{id}/deactivate [post]
func (h *PaymentTermHandler) Deactivate(c *gin.Context) {
	termID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid payment term ID format")
		return
	}

	term, err := h.termService.Deactivate(c.Request.Context(), termID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, term)
}

// ExchangeRateHandler handles exchange rate endpoints
type ExchangeRateHandler struct {
	BaseHandler
	rateService *billingapp.ExchangeRateService
}

// NewExchangeRateHandler creates a new ExchangeRateHandler
func NewExchangeRateHandler(rateService *billingapp.ExchangeRateService) *ExchangeRateHandler {
	return &ExchangeRateHandler{rateService: rateService}
}

// Register godoc
// @Summary      Register exchange rate
// @Description  Record the rate of a foreign currency against the base currency
// @Tags         exchange-rates
// @Accept       json
// @Produce      json
// @Param        request body billingapp.RegisterRateRequest true "Rate registration request"
// @Success      201 {object} dto.Response{data=billingapp.ExchangeRateResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/exchange-rates [post]
func (h *ExchangeRateHandler) Register(c *gin.Context) {
	var req billingapp.RegisterRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate, err := h.rateService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rate)
}

// Latest godoc
// @Summary      Get latest exchange rate
// @Tags         exchange-rates
// @Produce      json
// @Param        currency path string true "Currency code (ISO 4217)"
// @Success      200 {object} dto.Response{data=billingapp.ExchangeRateResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/exchange-rates/{currency}/latest [get]
func (h *ExchangeRateHandler) Latest(c *gin.Context) {
	currency := c.Param("currency")
	if currency == "" {
		h.BadRequest(c, "Currency code is required")
		return
	}

	rate, err := h.rateService.Latest(c.Request.Context(), currency)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rate)
}

// At godoc
// @Summary      Get exchange rate at instant
// @Description  The rate in effect for the currency at the given moment
// @Tags         exchange-rates
// @Produce      json
// @Param        currency path string true "Currency code (ISO 4217)"
// @Param        at query string true "Instant (RFC 3339)"
// @Success      200 {object} dto.Response{data=billingapp.ExchangeRateResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/exchange-rates/{currency}/at [get]
func (h *ExchangeRateHandler) At(c *gin.Context) {
	currency := c.Param("currency")
	if currency == "" {
		h.BadRequest(c, "Currency code is required")
		return
	}

	at, err := time.Parse(time.RFC3339, c.Query("at"))
	if err != nil {
		h.BadRequest(c, "Invalid at timestamp, expected RFC 3339")
		return
	}

	rate, err := h.rateService.At(c.Request.Context(), currency, at)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rate)
}

// History godoc
// @Summary      List exchange rate history
// @Tags         exchange-rates
// @Produce      json
// @Param        currency path string true "Currency code (ISO 4217)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]billingapp.ExchangeRateResponse}
// @Security     BearerAuth
// @Router       /billing/exchange-rates/{currency} [get]
func (h *ExchangeRateHandler) History(c *gin.Context) {
	currency := c.Param("currency")
	if currency == "" {
		h.BadRequest(c, "Currency code is required")
		return
	}

	page, pageSize := paginationDefaults(queryInt(c, "page"), queryInt(c, "page_size"))

	rates, err := h.rateService.History(c.Request.Context(), currency, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rates)
}

// Convert godoc
// @Summary      Convert to base currency
// @Description  Convert an amount in a foreign currency to the base currency using the latest rate
// @Tags         exchange-rates
// @Produce      json
// @Param        currency path string true "Currency code (ISO 4217)"
// @Param        amount query string true "Amount to convert"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /billing/exchange-rates/{currency}/convert [get]
func (h *ExchangeRateHandler) Convert(c *gin.Context) {
	currency := c.Param("currency")
	if currency == "" {
		h.BadRequest(c, "Currency code is required")
		return
	}

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}

	converted, err := h.rateService.ConvertToBase(c.Request.Context(), currency, amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"currency": currency,
		"amount":   amount,
		"base":     converted,
	})
}
