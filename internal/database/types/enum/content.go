package enum

// ContentType distinguishes the two kinds of reportable content.
//
//go:generate go tool enumer -type=ContentType -trimprefix=ContentType
type ContentType int

const (
	// ContentTypePost is a top-level board post.
	ContentTypePost ContentType = iota
	// ContentTypeComment is a comment attached to a post.
	ContentTypeComment
)
