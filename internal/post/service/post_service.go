package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/postboard-app/postboard/backend/internal/common/clock"
	commoncrypto "github.com/postboard-app/postboard/backend/internal/common/crypto"
	commonerrors "github.com/postboard-app/postboard/backend/internal/common/errors"
	"github.com/postboard-app/postboard/backend/internal/common/logger"
	"github.com/postboard-app/postboard/backend/internal/observability/metrics"
	"github.com/postboard-app/postboard/backend/internal/post/domain"
	postrepo "github.com/postboard-app/postboard/backend/internal/post/repository"
	userdomain "github.com/postboard-app/postboard/backend/internal/user/domain"
)

// ErrPostNotFound covers both a missing post and a post owned by
// someone else, so a non-owner cannot probe for existence.
var ErrPostNotFound = commonerrors.NewDomainError(
	"POST_NOT_FOUND",
	commonerrors.CategoryNotFound,
	http.StatusNotFound,
	"post not found",
)

type PostService struct {
	repo  postrepo.Repository
	idGen commoncrypto.IDGenerator
	clock clock.Clock
	log   *logger.Logger
}

func NewPostService(
	repo postrepo.Repository,
	idGen commoncrypto.IDGenerator,
	clock clock.Clock,
	log *logger.Logger,
) *PostService {
	return &PostService{
		repo:  repo,
		idGen: idGen,
		clock: clock,
		log:   log,
	}
}

type CreateInput struct {
	Title   string
	Content string
}

type UpdateInput struct {
	Title   *string
	Content *string
}

func (s *PostService) Create(ctx context.Context, author userdomain.User, input CreateInput) (domain.PostWithAuthor, error) {
	id, err := s.idGen.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(author.ID),
			"action":  "post_create_id_failed",
		}).Errorf("post create failed: id generation error: %v", err)
		return domain.PostWithAuthor{}, commonerrors.ErrInternalError.WithCause(err)
	}

	now := s.clock.Now()
	post := domain.Post{
		ID:        domain.ID(id),
		Title:     input.Title,
		Content:   input.Content,
		AuthorID:  author.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return domain.PostWithAuthor{}, s.dbError(ctx, string(author.ID), "post_create_failed", err)
	}

	metrics.PostsCreated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(author.ID),
		"post_id": id,
		"action":  "post_created",
	}).Info("post created")

	return withAuthor(post, author), nil
}

func (s *PostService) List(ctx context.Context) ([]domain.PostWithAuthor, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.dbError(ctx, "", "post_list_failed", err)
	}
	return posts, nil
}

func (s *PostService) GetByID(ctx context.Context, id domain.ID) (domain.PostWithAuthor, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return domain.PostWithAuthor{}, ErrPostNotFound
		}
		return domain.PostWithAuthor{}, s.dbError(ctx, "", "post_get_failed", err)
	}
	return post, nil
}

func (s *PostService) ListByAuthor(ctx context.Context, author userdomain.User) ([]domain.PostWithAuthor, error) {
	posts, err := s.repo.FindByAuthor(ctx, author.ID)
	if err != nil {
		return nil, s.dbError(ctx, string(author.ID), "post_list_mine_failed", err)
	}
	return posts, nil
}

// Update applies a partial update. Ownership is enforced by the
// repository predicate in the same statement as the write, so there is
// no read-then-write window.
func (s *PostService) Update(ctx context.Context, author userdomain.User, id domain.ID, input UpdateInput) (domain.PostWithAuthor, error) {
	post, err := s.repo.UpdateOwned(ctx, id, author.ID, input.Title, input.Content, s.clock.Now())
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": string(author.ID),
				"post_id": string(id),
				"action":  "post_update_not_found",
			}).Warn("post update failed: not found or not owned")
			return domain.PostWithAuthor{}, ErrPostNotFound
		}
		return domain.PostWithAuthor{}, s.dbError(ctx, string(author.ID), "post_update_failed", err)
	}

	metrics.PostsUpdated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(author.ID),
		"post_id": string(id),
		"action":  "post_updated",
	}).Info("post updated")

	return withAuthor(post, author), nil
}

func (s *PostService) Delete(ctx context.Context, author userdomain.User, id domain.ID) error {
	if err := s.repo.DeleteOwned(ctx, id, author.ID); err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": string(author.ID),
				"post_id": string(id),
				"action":  "post_delete_not_found",
			}).Warn("post delete failed: not found or not owned")
			return ErrPostNotFound
		}
		return s.dbError(ctx, string(author.ID), "post_delete_failed", err)
	}

	metrics.PostsDeleted.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(author.ID),
		"post_id": string(id),
		"action":  "post_deleted",
	}).Info("post deleted")

	return nil
}

func withAuthor(post domain.Post, author userdomain.User) domain.PostWithAuthor {
	return domain.PostWithAuthor{
		Post: post,
		Author: domain.Author{
			ID:       author.ID,
			Username: author.Username,
			Email:    author.Email,
		},
	}
}

func (s *PostService) dbError(ctx context.Context, userID, action string, err error) error {
	fields := logger.Fields{"action": action}
	if userID != "" {
		fields["user_id"] = userID
	}
	s.log.WithFields(ctx, fields).Errorf("storage operation failed: %v", err)
	return commonerrors.ErrDatabaseError.WithCause(err)
}
