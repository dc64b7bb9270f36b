package storage

import (
	"context"

	"github.com/hyunw/bboard/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Account operations.
	//
	// CreateAccount is a conditional insert: implementations must enforce
	// username uniqueness (and registration-IP uniqueness, when the
	// account carries a non-empty RegistrationIP) atomically, returning
	// model.ErrUsernameTaken or model.ErrIPLimitReached on conflict.
	// Two concurrent identical registrations must yield exactly one
	// success and one conflict.
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	GetAccountByIP(ctx context.Context, ip string) (*model.Account, error)

	// Post operations
	SavePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id model.PostID) (*model.Post, error)
	// ListPosts returns posts newest first.
	ListPosts(ctx context.Context) ([]*model.Post, error)

	// Comment operations
	SaveComment(ctx context.Context, comment *model.Comment) error
	// ListComments returns a post's comments oldest first.
	ListComments(ctx context.Context, postID model.PostID) ([]*model.Comment, error)
}
