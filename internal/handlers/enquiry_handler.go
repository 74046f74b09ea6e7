package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voltdrive/enquiry-api/internal/models"
	"github.com/voltdrive/enquiry-api/internal/services"
	"github.com/voltdrive/enquiry-api/pkg/mailer"
)

type EnquiryHandler struct {
	service services.EnquiryServiceInterface
}

func NewEnquiryHandler(service services.EnquiryServiceInterface) *EnquiryHandler {
	return &EnquiryHandler{service: service}
}

// SubmitEnquiry accepts one multipart submission: a required formData part
// holding a JSON-encoded enquiry record and an optional file part which is
// forwarded verbatim. The record itself is not validated beyond parse
// success; missing fields render as "Not specified" downstream.
func (h *EnquiryHandler) SubmitEnquiry(c *gin.Context) {
	formData := c.PostForm("formData")
	if formData == "" {
		respondError(c, http.StatusBadRequest, "Form data is required", nil)
		return
	}

	var record models.EnquiryRecord
	if err := json.Unmarshal([]byte(formData), &record); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	attachment, err := readAttachment(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid file upload", err)
		return
	}

	if err := h.service.SubmitEnquiry(c.Request.Context(), &record, attachment); err != nil {
		respondDelegationError(c, http.StatusInternalServerError, "Failed to send email", err)
		return
	}

	c.JSON(http.StatusOK, models.EnquiryResponse{Message: "Email sent successfully"})
}

// readAttachment extracts the optional file part. Filename, declared media
// type and bytes are preserved unmodified.
func readAttachment(c *gin.Context) (*mailer.Attachment, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &mailer.Attachment{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
