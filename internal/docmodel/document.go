// Package docmodel defines the Document record of the blog index and the
// parser that builds one from a source file.
package docmodel

import "time"

// NavLink is a shallow reference to another document of the same index.
type NavLink struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Document is one parsed source file. Field order is the serialized order.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Slug      string    `json:"slug"`
	NextPost  *NavLink  `json:"nextPost"`
	PrevPost  *NavLink  `json:"prevPost"`
	HTML      string    `json:"html,omitempty"`
}

// Link returns the navigation reference pointing at d.
func (d *Document) Link() *NavLink {
	return &NavLink{ID: d.ID, Title: d.Title}
}
