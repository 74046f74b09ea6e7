package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/voltdrive/enquiry-api/config"
	"github.com/voltdrive/enquiry-api/internal/models"
	"github.com/voltdrive/enquiry-api/pkg/logger"
	"github.com/voltdrive/enquiry-api/pkg/mailer"
	"github.com/voltdrive/enquiry-api/pkg/metrics"
)

// EnquiryService turns a parsed enquiry submission into an outgoing email.
// It is stateless; the email is the system of record, nothing is persisted.
type EnquiryService struct {
	sender mailer.Sender
	config *config.Config
}

// NewEnquiryService creates a new enquiry service instance
func NewEnquiryService(sender mailer.Sender, cfg *config.Config) *EnquiryService {
	return &EnquiryService{
		sender: sender,
		config: cfg,
	}
}

// SubmitEnquiry composes plain-text and HTML renderings of the record,
// attaches the uploaded file verbatim when present, and delegates delivery
// to the mail sender. No retry on failure; the caller surfaces the error.
func (s *EnquiryService) SubmitEnquiry(ctx context.Context, record *models.EnquiryRecord, attachment *mailer.Attachment) error {
	msg := &mailer.Message{
		From:       s.config.Email.From,
		To:         s.config.Email.To,
		Subject:    ComposeSubject(record),
		TextBody:   ComposeTextBody(record),
		HTMLBody:   ComposeHTMLBody(record),
		Attachment: attachment,
	}

	if attachment != nil {
		metrics.EnquiryAttachments.WithLabelValues(attachment.ContentType).Inc()
	}

	start := time.Now()
	err := s.sender.Send(ctx, msg)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.MailSendDuration.WithLabelValues("error").Observe(duration)
		metrics.MailSendTotal.WithLabelValues("error").Inc()
		metrics.EnquirySubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to send enquiry email",
			zap.Error(err),
			zap.String("subject", msg.Subject),
			zap.Bool("has_attachment", attachment != nil),
		)
		return err
	}

	metrics.MailSendDuration.WithLabelValues("success").Observe(duration)
	metrics.MailSendTotal.WithLabelValues("success").Inc()
	metrics.EnquirySubmissions.WithLabelValues("success").Inc()
	logger.Info("Enquiry email sent",
		zap.String("subject", msg.Subject),
		zap.Bool("has_attachment", attachment != nil),
		zap.Float64("duration", duration),
	)
	return nil
}
