package response

import (
	"time"

	"github.com/hyunw/bboard/internal/model"
)

// Account represents an account in API responses.
// The password hash is never serialized.
type Account struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// AccountFromModel converts a model.Account to a response Account
func AccountFromModel(a *model.Account) Account {
	return Account{
		ID:          string(a.ID),
		Username:    a.Username,
		DisplayName: a.DisplayName,
	}
}

// LoginResponse is the response for a successful login
type LoginResponse struct {
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
}

// Comment represents a comment in API responses
type Comment struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommentFromModel converts a model.Comment to a response Comment
func CommentFromModel(c *model.Comment) Comment {
	return Comment{
		ID:         string(c.ID),
		AuthorName: c.AuthorName,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
}

// Post represents a post in API responses
type Post struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostFromModel converts a model.Post to a response Post
func PostFromModel(p *model.Post) Post {
	return Post{
		ID:         string(p.ID),
		AuthorName: p.AuthorName,
		Title:      p.Title,
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
	}
}

// PostDetail is a post together with its comments
type PostDetail struct {
	Post
	Comments []Comment `json:"comments"`
}

// PostDetailFromModel converts a post and its comments
func PostDetailFromModel(p *model.Post, comments []*model.Comment) PostDetail {
	out := make([]Comment, len(comments))
	for i, c := range comments {
		out[i] = CommentFromModel(c)
	}
	return PostDetail{
		Post:     PostFromModel(p),
		Comments: out,
	}
}
