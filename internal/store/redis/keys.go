package redis

const (
	// KeyPrefixPost is the prefix for post documents
	KeyPrefixPost = "quill:post:"
	// KeyPostsByTime is the ZSET ordering post ids by creation time
	KeyPostsByTime = "quill:posts:bytime"
	// KeyPostsBySlug is the HASH mapping slug -> post id
	KeyPostsBySlug = "quill:posts:byslug"
	// KeyPrefixBookmark is the prefix for bookmark documents
	KeyPrefixBookmark = "quill:bookmark:"
	// KeyAllBookmarks is the set of all bookmark ids
	KeyAllBookmarks = "quill:bookmarks:all"
)

// PostKey returns the Redis key for a post document
func PostKey(id string) string {
	return KeyPrefixPost + id
}

// BookmarkKey returns the Redis key for a bookmark document
func BookmarkKey(id string) string {
	return KeyPrefixBookmark + id
}
