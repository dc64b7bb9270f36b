package model

import "time"

// PostID uniquely identifies a post
type PostID string

// CommentID uniquely identifies a comment
type CommentID string

// Post represents a board post.
// AuthorName is denormalized at creation time; accounts are immutable so
// the stored name can never go stale.
type Post struct {
	ID         PostID
	AuthorID   AccountID
	AuthorName string
	Title      string
	Content    string
	CreatedAt  time.Time
}

// Comment represents a comment on a post
type Comment struct {
	ID         CommentID
	PostID     PostID
	AuthorID   AccountID
	AuthorName string
	Text       string
	CreatedAt  time.Time
}
