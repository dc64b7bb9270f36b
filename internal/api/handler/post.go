package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hyunw/bboard/internal/api/middleware"
	"github.com/hyunw/bboard/internal/api/request"
	"github.com/hyunw/bboard/internal/api/response"
	"github.com/hyunw/bboard/internal/model"
	"github.com/hyunw/bboard/internal/services/board"
)

// PostHandler handles post and comment endpoints
type PostHandler struct {
	boardService *board.Service
}

// NewPostHandler creates a new post handler
func NewPostHandler(boardService *board.Service) *PostHandler {
	return &PostHandler{
		boardService: boardService,
	}
}

// List handles GET /posts
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.boardService.ListPosts(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Post, len(posts))
	for i, p := range posts {
		out[i] = response.PostFromModel(p)
	}
	response.JSON(w, http.StatusOK, out)
}

// Get handles GET /posts/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PostID(mux.Vars(r)["id"])

	post, comments, err := h.boardService.GetPost(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PostDetailFromModel(post, comments))
}

// Create handles POST /posts (authenticated)
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Title == "" {
		WriteError(w, NewInvalidRequestError("title is required"))
		return
	}
	if req.Content == "" {
		WriteError(w, NewInvalidRequestError("content is required"))
		return
	}

	claims := middleware.MustGetClaims(r.Context())
	post, err := h.boardService.CreatePost(r.Context(), model.AccountID(claims.AccountID), claims.DisplayName, req.Title, req.Content)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PostFromModel(post))
}

// AddComment handles POST /posts/{id}/comments (authenticated)
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id := model.PostID(mux.Vars(r)["id"])

	var req request.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Text == "" {
		WriteError(w, NewInvalidRequestError("text is required"))
		return
	}

	claims := middleware.MustGetClaims(r.Context())
	comment, err := h.boardService.AddComment(r.Context(), id, model.AccountID(claims.AccountID), claims.DisplayName, req.Text)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CommentFromModel(comment))
}
