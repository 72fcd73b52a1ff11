package domain

import "time"

// Post is a published (or draft-less, this blog has no drafts) blog entry.
// The store assigns ID at creation; Slug, Author and Timestamp never change
// after that. HTML is always the rendered form of the current Text.
type Post struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	HTML      string    `json:"html"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// CreatePost is the request to publish a new post.
type CreatePost struct {
	Title  string
	Text   string
	Author string
}

// UpdatePost is the request to edit an existing post in place.
// Slug, author and timestamp of the target post are preserved.
type UpdatePost struct {
	ID    string
	Title string
	Text  string
}
