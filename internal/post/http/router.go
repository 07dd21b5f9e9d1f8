package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/postboard-app/postboard/backend/internal/auth/identity"
	"github.com/postboard-app/postboard/backend/internal/common/config"
	commonhttp "github.com/postboard-app/postboard/backend/internal/common/http"
	"github.com/postboard-app/postboard/backend/internal/common/logger"
	"github.com/postboard-app/postboard/backend/internal/post/domain"
	"github.com/postboard-app/postboard/backend/internal/post/service"
)

type createPostRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=20000"`
}

type updatePostRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content" validate:"omitempty,min=1,max=20000"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	posts   *service.PostService
	timeout func(http.HandlerFunc) http.HandlerFunc
	log     *logger.Logger
}

func NewHandler(posts *service.PostService, cfg config.APIConfig, log *logger.Logger) http.Handler {
	h := &Handler{
		posts:   posts,
		timeout: commonhttp.WithTimeout(cfg.RequestTimeout),
		log:     log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts", h.timeout(h.collection))
	mux.HandleFunc("/api/posts/", h.timeout(h.item))
	return mux
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, commonhttp.TraceIDFromContext(r.Context()))
	}
}

func (h *Handler) item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/posts/")
	if rest == "" || strings.Contains(rest, "/") {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeInvalidPath, "invalid path", nil, commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	if rest == "mine" {
		if r.Method != http.MethodGet {
			commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, commonhttp.TraceIDFromContext(r.Context()))
			return
		}
		h.listMine(w, r)
		return
	}

	if _, err := uuid.Parse(rest); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPostID, "invalid post id", nil, commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	id := domain.ID(rest)

	switch r.Method {
	case http.MethodGet:
		h.getByID(w, r, id)
	case http.MethodPatch:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, commonhttp.TraceIDFromContext(r.Context()))
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, ToPostResponses(posts))
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request, id domain.ID) {
	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, ToPostResponse(post))
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	ident, err := identity.Require(r.Context())
	if err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	posts, err := h.posts.ListByAuthor(r.Context(), ident.User)
	if err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, ToPostResponses(posts))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ident, err := identity.Require(r.Context())
	if err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	var req createPostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("post create failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	post, err := h.posts.Create(r.Context(), ident.User, service.CreateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, ToPostResponse(post))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, id domain.ID) {
	ident, err := identity.Require(r.Context())
	if err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	var req updatePostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("post update failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	post, err := h.posts.Update(r.Context(), ident.User, id, service.UpdateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, ToPostResponse(post))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, id domain.ID) {
	ident, err := identity.Require(r.Context())
	if err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	if err := h.posts.Delete(r.Context(), ident.User, id); err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, messageResponse{Message: "post deleted"})
}
