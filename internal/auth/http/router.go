package http

import (
	"net/http"

	"github.com/postboard-app/postboard/backend/internal/auth/identity"
	"github.com/postboard-app/postboard/backend/internal/auth/service"
	"github.com/postboard-app/postboard/backend/internal/auth/session"
	"github.com/postboard-app/postboard/backend/internal/common/config"
	commonhttp "github.com/postboard-app/postboard/backend/internal/common/http"
	"github.com/postboard-app/postboard/backend/internal/common/logger"
	posthttp "github.com/postboard-app/postboard/backend/internal/post/http"
	postservice "github.com/postboard-app/postboard/backend/internal/post/service"
	userdomain "github.com/postboard-app/postboard/backend/internal/user/domain"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string            `json:"token"`
	User  userdomain.Public `json:"user"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type meResponse struct {
	userdomain.Public
	Posts []posthttp.PostResponse `json:"posts"`
}

type Handler struct {
	auth    *service.AuthService
	posts   *postservice.PostService
	carrier *session.Carrier
	log     *logger.Logger
}

func NewHandler(
	auth *service.AuthService,
	posts *postservice.PostService,
	carrier *session.Carrier,
	cfg config.APIConfig,
	log *logger.Logger,
) http.Handler {
	h := &Handler{auth: auth, posts: posts, carrier: carrier, log: log}

	timeout := commonhttp.WithTimeout(cfg.RequestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", commonhttp.RequireMethod(http.MethodPost)(timeout(h.register)))
	mux.HandleFunc("/api/auth/login", commonhttp.RequireMethod(http.MethodPost)(timeout(h.login)))
	mux.HandleFunc("/api/auth/logout", commonhttp.RequireMethod(http.MethodPost)(h.logout))
	mux.HandleFunc("/api/auth/refresh", commonhttp.RequireMethod(http.MethodPost)(timeout(h.refresh)))
	mux.HandleFunc("/api/auth/me", commonhttp.RequireMethod(http.MethodGet)(timeout(h.me)))
	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	result, err := h.auth.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, authResponse{
		Token: result.Token,
		User:  result.User.Public(),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	h.carrier.Attach(w, result.Token)
	commonhttp.WriteJSON(w, http.StatusOK, authResponse{
		Token: result.Token,
		User:  result.User.Public(),
	})
}

// logout clears the session unconditionally; it succeeds even when no
// session existed.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.carrier.Clear(w)
	commonhttp.WriteJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ident, err := identity.Require(r.Context())
	if err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	token, err := h.auth.Reissue(r.Context(), ident.User)
	if err != nil {
		commonhttp.WriteDomainError(r.Context(), w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
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

	commonhttp.WriteJSON(w, http.StatusOK, meResponse{
		Public: ident.User.Public(),
		Posts:  posthttp.ToPostResponses(posts),
	})
}
