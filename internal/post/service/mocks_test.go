package service_test

import (
	"context"
	"time"

	"github.com/postboard-app/postboard/backend/internal/post/domain"
	postrepo "github.com/postboard-app/postboard/backend/internal/post/repository"
	userdomain "github.com/postboard-app/postboard/backend/internal/user/domain"
)

type mockPostRepo struct {
	createFunc       func(ctx context.Context, post domain.Post) error
	findAllFunc      func(ctx context.Context) ([]domain.PostWithAuthor, error)
	findByIDFunc     func(ctx context.Context, id domain.ID) (domain.PostWithAuthor, error)
	findByAuthorFunc func(ctx context.Context, authorID userdomain.ID) ([]domain.PostWithAuthor, error)
	updateOwnedFunc  func(ctx context.Context, id domain.ID, authorID userdomain.ID, title, content *string, updatedAt time.Time) (domain.Post, error)
	deleteOwnedFunc  func(ctx context.Context, id domain.ID, authorID userdomain.ID) error
}

func (m *mockPostRepo) Create(ctx context.Context, post domain.Post) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) FindAll(ctx context.Context) ([]domain.PostWithAuthor, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id domain.ID) (domain.PostWithAuthor, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.PostWithAuthor{}, postrepo.ErrPostNotFound
}

func (m *mockPostRepo) FindByAuthor(ctx context.Context, authorID userdomain.ID) ([]domain.PostWithAuthor, error) {
	if m.findByAuthorFunc != nil {
		return m.findByAuthorFunc(ctx, authorID)
	}
	return nil, nil
}

func (m *mockPostRepo) UpdateOwned(ctx context.Context, id domain.ID, authorID userdomain.ID, title, content *string, updatedAt time.Time) (domain.Post, error) {
	if m.updateOwnedFunc != nil {
		return m.updateOwnedFunc(ctx, id, authorID, title, content, updatedAt)
	}
	return domain.Post{}, postrepo.ErrPostNotFound
}

func (m *mockPostRepo) DeleteOwned(ctx context.Context, id domain.ID, authorID userdomain.ID) error {
	if m.deleteOwnedFunc != nil {
		return m.deleteOwnedFunc(ctx, id, authorID)
	}
	return postrepo.ErrPostNotFound
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "post-1", nil
}
