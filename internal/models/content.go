package models

// BlogPost is one card on the marketing site's blog grid.
type BlogPost struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Author      string `json:"author"`
	ImageURL    string `json:"imageUrl"`
}

// FAQItem is one entry of the FAQ accordion.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
