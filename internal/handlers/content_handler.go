package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voltdrive/enquiry-api/internal/services"
)

// ContentHandler serves the static informational content consumed by the
// blog and FAQ pages.
type ContentHandler struct {
	service services.ContentServiceInterface
}

func NewContentHandler(service services.ContentServiceInterface) *ContentHandler {
	return &ContentHandler{service: service}
}

func (h *ContentHandler) GetBlogPosts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"posts": h.service.GetBlogPosts()})
}

func (h *ContentHandler) GetFAQ(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"faqs": h.service.GetFAQItems()})
}
