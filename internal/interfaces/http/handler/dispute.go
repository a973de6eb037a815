package handler

import (
	"io"

	receivableapp "github.com/gestion/backend/internal/application/receivable"
	"github.com/gin-gonic/gin"
)

// maxAttachmentSize caps dispute attachment uploads at 10 MiB
const maxAttachmentSize = 10 << 20

// DisputeHandler handles dispute endpoints
type DisputeHandler struct {
	BaseHandler
	disputeService *receivableapp.DisputeService
}

// NewDisputeHandler creates a new DisputeHandler
func NewDisputeHandler(disputeService *receivableapp.DisputeService) *DisputeHandler {
	return &DisputeHandler{disputeService: disputeService}
}

// Open godoc
// @Summary      Open dispute
// @Description  Open a dispute on a receivable document, freezing its collection
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        request body receivableapp.OpenDisputeRequest true "Dispute"
// @Success      201 {object} dto.Response{data=receivableapp.DisputeResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/disputes [post]
func (h *DisputeHandler) Open(c *gin.Context) {
	var req receivableapp.OpenDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dispute, err := h.disputeService.Open(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dispute)
}

// GetByID godoc
// @Summary      Get dispute by ID
// @Tags         disputes
// @Produce      json
// @Param        id path string true "Dispute ID" format(uuid)
// @Success      200 {object} dto.Response{data=receivableapp.DisputeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/disputes/{id} [get]
func (h *DisputeHandler) GetByID(c *gin.Context) {
	disputeID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid dispute ID format")
		return
	}

	dispute, err := h.disputeService.GetByID(c.Request.Context(), disputeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dispute)
}

// List godoc
// @Summary      List disputes
// @Tags         disputes
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]receivableapp.DisputeResponse}
// @Security     BearerAuth
// @Router       /receivables/disputes [get]
func (h *DisputeHandler) List(c *gin.Context) {
	page, pageSize := paginationDefaults(queryInt(c, "page"), queryInt(c, "page_size"))

	disputes, total, err := h.disputeService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, disputes, total, page, pageSize)
}

// ListByDocument godoc
// @Summary      List disputes by document
// @Tags         disputes
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]receivableapp.DisputeResponse}
// @Security     BearerAuth
// @Router       /receivables/documents/{id}/disputes [get]
func (h *DisputeHandler) ListByDocument(c *gin.Context) {
	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	disputes, err := h.disputeService.ListByDocument(c.Request.Context(), documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, disputes)
}

// Resolve godoc
// @Summary      Resolve dispute
// @Description  Close the dispute, accepting or rejecting the customer's claim
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        id path string true "Dispute ID" format(uuid)
// @Param        request body receivableapp.ResolveDisputeRequest true "Resolution"
// @Success      200 {object} dto.Response{data=receivableapp.DisputeResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/disputes/{id}/resolve [post]
func (h *DisputeHandler) Resolve(c *gin.Context) {
	disputeID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid dispute ID format")
		return
	}

	var req receivableapp.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.ResolvedBy = actedBy(c)

	dispute, err := h.disputeService.Resolve(c.Request.Context(), disputeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dispute)
}

// AddAttachment godoc
// @Summary      Upload dispute attachment
// @Description  Attach a supporting file to an open dispute
// @Tags         disputes
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Dispute ID" format(uuid)
// @Param        file formData file true "Attachment file"
// @Success      200 {object} dto.Response{data=receivableapp.DisputeResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/disputes/{id}/attachments [post]
func (h *DisputeHandler) AddAttachment(c *gin.Context) {
	disputeID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid dispute ID format")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Attachment file is required")
		return
	}
	if fileHeader.Size > maxAttachmentSize {
		h.BadRequest(c, "Attachment exceeds the maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read attachment")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAttachmentSize))
	if err != nil {
		h.InternalError(c, "Failed to read attachment")
		return
	}

	req := receivableapp.AddAttachmentRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		UploadedBy:  actedBy(c),
	}

	dispute, err := h.disputeService.AddAttachment(c.Request.Context(), disputeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dispute)
}

// GetAttachmentURL godoc
// @Summary      Get attachment download link
// @Description  Presigned URL for downloading a dispute attachment
// @Tags         disputes
// @Produce      json
// @Param        id path string true "Dispute ID" format(uuid)
// @Param        attachmentId path string true "Attachment ID" format(uuid)
// @Success      200 {object} dto.Response{data=receivableapp.AttachmentURLResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receivables/disputes/{id}/attachments/{attachmentId}/url [get]
func (h *DisputeHandler) GetAttachmentURL(c *gin.Context) {
	disputeID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid dispute ID format")
		return
	}
	attachmentID, ok := parseUUIDParam(c, "attachmentId")
	if !ok {
		h.BadRequest(c, "Invalid attachment ID format")
		return
	}

	url, err := h.disputeService.GetAttachmentURL(c.Request.Context(), disputeID, attachmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, url)
}
