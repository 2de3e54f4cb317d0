package models

import "time"

// NewsItem is one market news article from the scraping source.
type NewsItem struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Snippet     string    `json:"snippet,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// Announcement is one company announcement from the exchange's
// announcement page.
type Announcement struct {
	Company  string `json:"company"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date,omitempty"`
	URL      string `json:"url,omitempty"`
}

// SourceDocument is one scraped/searched source page used as raw
// material for forensic extraction.
type SourceDocument struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Markdown    string `json:"markdown,omitempty"`
}
