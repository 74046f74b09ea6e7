package services

import (
	"context"

	"github.com/voltdrive/enquiry-api/internal/models"
	"github.com/voltdrive/enquiry-api/pkg/mailer"
)

// EnquiryServiceInterface defines the interface for enquiry submission operations
type EnquiryServiceInterface interface {
	SubmitEnquiry(ctx context.Context, record *models.EnquiryRecord, attachment *mailer.Attachment) error
}

// ContentServiceInterface defines the interface for static site content
type ContentServiceInterface interface {
	GetBlogPosts() []models.BlogPost
	GetFAQItems() []models.FAQItem
}
