package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hyunw/bboard/internal/model"
	"github.com/hyunw/bboard/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	accounts      map[model.AccountID]*model.Account
	usernameIndex map[string]model.AccountID
	ipIndex       map[string]model.AccountID
	posts         map[model.PostID]*model.Post
	postOrder     []model.PostID
	comments      map[model.PostID][]*model.Comment
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:      make(map[model.AccountID]*model.Account),
		usernameIndex: make(map[string]model.AccountID),
		ipIndex:       make(map[string]model.AccountID),
		posts:         make(map[model.PostID]*model.Post),
		comments:      make(map[model.PostID][]*model.Comment),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

// CreateAccount inserts the account if neither its username nor (when set)
// its registration IP is already claimed. The check and the insert happen
// under a single lock, so concurrent identical registrations resolve to
// exactly one success.
func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernameIndex[account.Username]; taken {
		return model.ErrUsernameTaken
	}
	if account.RegistrationIP != "" {
		if _, taken := s.ipIndex[account.RegistrationIP]; taken {
			return model.ErrIPLimitReached
		}
	}

	s.accounts[account.ID] = account
	s.usernameIndex[account.Username] = account.ID
	if account.RegistrationIP != "" {
		s.ipIndex[account.RegistrationIP] = account.ID
	}
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *Storage) GetAccountByIP(ctx context.Context, ip string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.ipIndex[ip]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

// Post operations

func (s *Storage) SavePost(ctx context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.posts[post.ID]; !exists {
		s.postOrder = append(s.postOrder, post.ID)
	}
	s.posts[post.ID] = post
	return nil
}

func (s *Storage) GetPost(ctx context.Context, id model.PostID) (*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	return post, nil
}

func (s *Storage) ListPosts(ctx context.Context) ([]*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]*model.Post, 0, len(s.postOrder))
	for _, id := range s.postOrder {
		posts = append(posts, s.posts[id])
	}
	// Insertion order already tracks creation time, but sort to keep the
	// newest-first contract independent of how posts were saved.
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// Comment operations

func (s *Storage) SaveComment(ctx context.Context, comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.PostID] = append(s.comments[comment.PostID], comment)
	return nil
}

func (s *Storage) ListComments(ctx context.Context, postID model.PostID) ([]*model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comments := s.comments[postID]
	result := make([]*model.Comment, len(comments))
	copy(result, comments)
	return result, nil
}
