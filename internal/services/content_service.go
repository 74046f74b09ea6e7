package services

import (
	"github.com/voltdrive/enquiry-api/internal/models"
)

// ContentService serves the static informational content behind the blog and
// FAQ pages. The data is compiled in; an editorial change ships as a deploy.
type ContentService struct {
	posts []models.BlogPost
	faqs  []models.FAQItem
}

// NewContentService creates a content service with the built-in site content.
func NewContentService() *ContentService {
	return &ContentService{
		posts: []models.BlogPost{
			{
				Title:       "Understanding Modern Web Development",
				Description: "Explore the latest trends and technologies in web development...",
				Date:        "2024-01-15",
				Author:      "John Doe",
				ImageURL:    "/blog-placeholder.jpg",
			},
		},
		faqs: []models.FAQItem{
			{
				Question: "What services do you provide?",
				Answer:   "We provide comprehensive GIS and mapping solutions, including spatial data analysis, custom map creation, and geospatial consulting services.",
			},
			{
				Question: "How can I get started with your services?",
				Answer:   "You can get started by contacting our team through the contact form or scheduling a consultation call. We'll discuss your needs and provide a tailored solution.",
			},
			{
				Question: "What are your pricing plans?",
				Answer:   "Our pricing varies based on project scope and requirements. Contact us for a detailed quote tailored to your specific needs.",
			},
			{
				Question: "Do you offer support after project completion?",
				Answer:   "Yes, we provide ongoing support and maintenance services to ensure your systems continue to run smoothly after project completion.",
			},
		},
	}
}

// GetBlogPosts returns all blog posts, newest first as authored.
func (s *ContentService) GetBlogPosts() []models.BlogPost {
	return s.posts
}

// GetFAQItems returns the FAQ entries in display order.
func (s *ContentService) GetFAQItems() []models.FAQItem {
	return s.faqs
}
