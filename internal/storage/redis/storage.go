package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hyunw/bboard/internal/model"
	"github.com/hyunw/bboard/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

// CreateAccount claims the username index key with SETNX; that claim is the
// uniqueness constraint. The account record is only written once every index
// claim has succeeded, so concurrent identical registrations resolve to one
// success and one conflict. Any later failure releases the claims already
// made, so a failed registration never leaves an index entry without an
// account behind it.
func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	claimed, err := s.client.SetNX(ctx, usernameIndexKey(account.Username), string(account.ID), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrUsernameTaken
	}

	if account.RegistrationIP != "" {
		claimed, err := s.client.SetNX(ctx, ipIndexKey(account.RegistrationIP), string(account.ID), 0).Result()
		if err != nil {
			s.releaseClaims(ctx, usernameIndexKey(account.Username))
			return err
		}
		if !claimed {
			s.releaseClaims(ctx, usernameIndexKey(account.Username))
			return model.ErrIPLimitReached
		}
	}

	if err := s.client.Set(ctx, accountKey(account.ID), data, 0).Err(); err != nil {
		keys := []string{usernameIndexKey(account.Username)}
		if account.RegistrationIP != "" {
			keys = append(keys, ipIndexKey(account.RegistrationIP))
		}
		s.releaseClaims(ctx, keys...)
		return err
	}
	return nil
}

// releaseClaims deletes index claims after a failed registration so the
// username and address stay registrable. Runs detached from the caller's
// context: the failure may be a cancellation, and the claims must still be
// released.
func (s *Storage) releaseClaims(ctx context.Context, keys ...string) {
	s.client.Del(context.WithoutCancel(ctx), keys...)
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	return s.GetAccount(ctx, model.AccountID(idStr))
}

func (s *Storage) GetAccountByIP(ctx context.Context, ip string) (*model.Account, error) {
	idStr, err := s.client.Get(ctx, ipIndexKey(ip)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	return s.GetAccount(ctx, model.AccountID(idStr))
}

// Post operations

func (s *Storage) SavePost(ctx context.Context, post *model.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return err
	}

	// Pipeline the record write and the time index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, postKey(post.ID), data, 0)
	pipe.ZAdd(ctx, postsByTimeKey(), redis.Z{
		Score:  float64(post.CreatedAt.UnixNano()),
		Member: string(post.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPost(ctx context.Context, id model.PostID) (*model.Post, error) {
	data, err := s.client.Get(ctx, postKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPostNotFound
		}
		return nil, err
	}

	var post model.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Storage) ListPosts(ctx context.Context) ([]*model.Post, error) {
	ids, err := s.client.ZRevRange(ctx, postsByTimeKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	posts := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		post, err := s.GetPost(ctx, model.PostID(id))
		if err != nil {
			if errors.Is(err, model.ErrPostNotFound) {
				// Index entry without a record; skip it
				continue
			}
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// Comment operations

func (s *Storage) SaveComment(ctx context.Context, comment *model.Comment) error {
	data, err := json.Marshal(comment)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, commentsKey(comment.PostID), data).Err()
}

func (s *Storage) ListComments(ctx context.Context, postID model.PostID) ([]*model.Comment, error) {
	items, err := s.client.LRange(ctx, commentsKey(postID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	comments := make([]*model.Comment, 0, len(items))
	for _, item := range items {
		var comment model.Comment
		if err := json.Unmarshal([]byte(item), &comment); err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}
	return comments, nil
}
