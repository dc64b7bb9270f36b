package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hyunw/bboard/internal/dependencies/clock"
	"github.com/hyunw/bboard/internal/model"
	"github.com/hyunw/bboard/internal/storage"
)

// ErrMissingFields is returned when a post or comment is missing required content
var ErrMissingFields = errors.New("required fields are empty")

// Service handles posts and comments
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new board Service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// CreatePost creates a post authored by the given account
func (s *Service) CreatePost(ctx context.Context, authorID model.AccountID, authorName, title, content string) (*model.Post, error) {
	if title == "" || content == "" {
		return nil, ErrMissingFields
	}

	post := &model.Post{
		ID:         model.PostID(uuid.NewString()),
		AuthorID:   authorID,
		AuthorName: authorName,
		Title:      title,
		Content:    content,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.storage.SavePost(ctx, post); err != nil {
		return nil, fmt.Errorf("saving post: %w", err)
	}

	s.logger.Info("post created",
		slog.String("post_id", string(post.ID)),
		slog.String("author_id", string(authorID)),
	)
	return post, nil
}

// ListPosts returns all posts, newest first
func (s *Service) ListPosts(ctx context.Context) ([]*model.Post, error) {
	return s.storage.ListPosts(ctx)
}

// GetPost returns a post and its comments, oldest comment first
func (s *Service) GetPost(ctx context.Context, id model.PostID) (*model.Post, []*model.Comment, error) {
	post, err := s.storage.GetPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	comments, err := s.storage.ListComments(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("listing comments: %w", err)
	}
	return post, comments, nil
}

// AddComment creates a comment on an existing post.
// Fails with model.ErrPostNotFound when the post does not exist.
func (s *Service) AddComment(ctx context.Context, postID model.PostID, authorID model.AccountID, authorName, text string) (*model.Comment, error) {
	if text == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.storage.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:         model.CommentID(uuid.NewString()),
		PostID:     postID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Text:       text,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.storage.SaveComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("saving comment: %w", err)
	}
	return comment, nil
}
