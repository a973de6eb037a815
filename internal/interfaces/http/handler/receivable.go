package handler

import (
	receivableapp "github.com/gestion/backend/internal/application/receivable"
	"github.com/gin-gonic/gin"
)

// DocumentHandler handles accounts receivable document endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *receivableapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *receivableapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// CreateNote godoc
// @Summary      Create debit or credit note
// @Description  Open a manual receivable document against a customer
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Param        request body receivableapp.CreateNoteRequest true "Note creation request"
// @Success      201 {object} dto.Response{data=receivableapp.DocumentResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/documents [post]
func (h *DocumentHandler) CreateNote(c *gin.Context) {
	var req receivableapp.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	document, err := h.documentService.CreateNote(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, document)
}

// GetByID godoc
// @Summary      Get document by ID
// @Tags         receivables
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} dto.Response{data=receivableapp.DocumentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	document, err := h.documentService.GetByID(c.Request.Context(), documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, document)
}

// GetByNumber godoc
// @Summary      Get document by number
// @Tags         receivables
// @Produce      json
// @Param        number path string true "Document number"
// @Success      200 {object} dto.Response{data=receivableapp.DocumentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/documents/number/{number} [get]
func (h *DocumentHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Document number is required")
		return
	}

	document, err := h.documentService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, document)
}

// List godoc
// @Summary      List receivable documents
// @Tags         receivables
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        kind query string false "Document kind" Enums(invoice, debit_note, credit_note)
// @Param        status query string false "Document status" Enums(open, partially_applied, settled, disputed, cancelled)
// @Param        overdue query bool false "Only overdue documents"
// @Success      200 {object} dto.Response{data=[]receivableapp.DocumentResponse}
// @Security     BearerAuth
// @Router       /receivables/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	var filter receivableapp.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.Page, filter.PageSize = paginationDefaults(filter.Page, filter.PageSize)

	documents, total, err := h.documentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, documents, total, filter.Page, filter.PageSize)
}

// Apply godoc
// @Summary      Apply payment or credit
// @Description  Apply a payment or credit note against the document's open balance
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body receivableapp.ApplyRequest true "Application"
// @Success      200 {object} dto.Response{data=receivableapp.DocumentResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/documents/{id}/applications [post]
func (h *DocumentHandler) Apply(c *gin.Context) {
	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req receivableapp.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.AppliedBy = actedBy(c)

	document, err := h.documentService.Apply(c.Request.Context(), documentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, document)
}

// ReverseApplication godoc
// @Summary      Reverse application
// @Description  Undo a prior application, restoring the document's open balance
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        applicationId path string true "Application ID" format(uuid)
// @Param        request body receivableapp.ReverseApplicationRequest true "Reversal reason"
// @Success      200 {object} dto.Response{data=receivableapp.DocumentResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/documents/{id}/applications/{applicationId}/reverse [post]
func (h *DocumentHandler) ReverseApplication(c *gin.Context) {
	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}
	applicationID, ok := parseUUIDParam(c, "applicationId")
	if !ok {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	var req receivableapp.ReverseApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.ReversedBy = actedBy(c)

	document, err := h.documentService.ReverseApplication(c.Request.Context(), documentID, applicationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, document)
}

// Cancel godoc
// @Summary      Cancel document
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body receivableapp.CancelDocumentRequest true "Cancellation reason"
// @Success      200 {object} dto.Response{data=receivableapp.DocumentResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/documents/{id}/cancel [post]
func (h *DocumentHandler) Cancel(c *gin.Context) {
	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req receivableapp.CancelDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	document, err := h.documentService.Cancel(c.Request.Context(), documentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, document)
}

// Statement godoc
// @Summary      Customer statement
// @Description  Open documents and balance summary for one customer
// @Tags         receivables
// @Produce      json
// @Param        customerId path string true "Customer ID" format(uuid)
// @Success      200 {object} dto.Response{data=receivableapp.StatementResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/customers/{customerId}/statement [get]
func (h *DocumentHandler) Statement(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "customerId")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	statement, err := h.documentService.Statement(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statement)
}

// AgingReport godoc
// @Summary      Aging report
// @Description  Open balances bucketed by days overdue across all customers
// @Tags         receivables
// @Produce      json
// @Success      200 {object} dto.Response{data=receivableapp.AgingReportResponse}
// @Security     BearerAuth
// @Router       /receivables/aging [get]
func (h *DocumentHandler) AgingReport(c *gin.Context) {
	report, err := h.documentService.AgingReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
