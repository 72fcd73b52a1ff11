package domain

// Bookmark is a free-form link document for the sidebar. The store treats it
// as opaque JSON; only the "id" field has meaning (upsert/delete key).
type Bookmark map[string]any

// ID returns the bookmark's identifier, or "" when none is set.
func (b Bookmark) ID() string {
	id, _ := b["id"].(string)
	return id
}

// SetID stores the identifier inside the document.
func (b Bookmark) SetID(id string) {
	b["id"] = id
}
