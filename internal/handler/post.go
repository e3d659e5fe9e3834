package handler

import (
	"net/http"
	"strconv"

	"github.com/msomdec/inkwell/internal/service"
)

// PostHandler handles post-related HTTP requests.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// HandleCreate creates a post owned by the caller.
// POST /posts
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromContext(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req struct {
		Title   string `json:"title" validate:"max=255"`
		Content string `json:"content"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := validateRequest(req); err != nil {
		writeServiceError(w, r, "create post", err)
		return
	}

	post, err := h.posts.Create(r.Context(), id.ID, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, r, "create post", err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostDTO(post))
}

// HandleList returns every post with its owner.
// GET /posts
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		writeServiceError(w, r, "list posts", err)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}

// HandleListByUser returns the posts of one user.
// GET /users/{id}/posts
func (h *PostHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	posts, err := h.posts.ListByOwner(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, "list posts by user", err)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}

// HandleGet returns a single post.
// GET /posts/{id}
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	post, err := h.posts.Get(r.Context(), postID)
	if err != nil {
		writeServiceError(w, r, "get post", err)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(post))
}

// HandleUpdate changes a post owned by the caller.
// PUT /posts/{id}
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromContext(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	postID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	var req struct {
		Title   *string `json:"title" validate:"omitempty,max=255"`
		Content *string `json:"content"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := validateRequest(req); err != nil {
		writeServiceError(w, r, "update post", err)
		return
	}

	post, err := h.posts.Update(r.Context(), id.ID, postID, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, r, "update post", err)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(post))
}

// HandleDelete removes a post owned by the caller.
// DELETE /posts/{id}
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromContext(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	postID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	if err := h.posts.Delete(r.Context(), id.ID, postID); err != nil {
		writeServiceError(w, r, "delete post", err)
		return
	}
	writeJSON(w, http.StatusOK, MessageDTO{Message: "Post deleted successfully."})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
