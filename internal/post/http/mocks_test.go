package http_test

import (
	"context"
	"sync"
	"time"

	"github.com/postboard-app/postboard/backend/internal/post/domain"
	postrepo "github.com/postboard-app/postboard/backend/internal/post/repository"
	userdomain "github.com/postboard-app/postboard/backend/internal/user/domain"
	userrepo "github.com/postboard-app/postboard/backend/internal/user/repository"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[userdomain.ID]userdomain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[userdomain.ID]userdomain.User)}
}

func (r *memUserRepo) add(user userdomain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
}

func (r *memUserRepo) Create(_ context.Context, user userdomain.User) error {
	r.add(user)
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id userdomain.ID) (userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	return user, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

type memPostRepo struct {
	mu    sync.Mutex
	posts []domain.Post
	byID  map[domain.ID]int
	users *memUserRepo
}

func newMemPostRepo(users *memUserRepo) *memPostRepo {
	return &memPostRepo{byID: make(map[domain.ID]int), users: users}
}

func (r *memPostRepo) withAuthor(post domain.Post) domain.PostWithAuthor {
	author, _ := r.users.FindByID(context.Background(), post.AuthorID)
	return domain.PostWithAuthor{
		Post: post,
		Author: domain.Author{
			ID:       author.ID,
			Username: author.Username,
			Email:    author.Email,
		},
	}
}

func (r *memPostRepo) Create(_ context.Context, post domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[post.ID] = len(r.posts)
	r.posts = append(r.posts, post)
	return nil
}

func (r *memPostRepo) FindAll(_ context.Context) ([]domain.PostWithAuthor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.PostWithAuthor, 0, len(r.posts))
	for i := len(r.posts) - 1; i >= 0; i-- {
		out = append(out, r.withAuthor(r.posts[i]))
	}
	return out, nil
}

func (r *memPostRepo) FindByID(_ context.Context, id domain.ID) (domain.PostWithAuthor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return domain.PostWithAuthor{}, postrepo.ErrPostNotFound
	}
	return r.withAuthor(r.posts[i]), nil
}

func (r *memPostRepo) FindByAuthor(_ context.Context, authorID userdomain.ID) ([]domain.PostWithAuthor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PostWithAuthor
	for i := len(r.posts) - 1; i >= 0; i-- {
		if r.posts[i].AuthorID == authorID {
			out = append(out, r.withAuthor(r.posts[i]))
		}
	}
	return out, nil
}

func (r *memPostRepo) UpdateOwned(_ context.Context, id domain.ID, authorID userdomain.ID, title, content *string, updatedAt time.Time) (domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok || r.posts[i].AuthorID != authorID {
		return domain.Post{}, postrepo.ErrPostNotFound
	}
	if title != nil {
		r.posts[i].Title = *title
	}
	if content != nil {
		r.posts[i].Content = *content
	}
	r.posts[i].UpdatedAt = updatedAt
	return r.posts[i], nil
}

func (r *memPostRepo) DeleteOwned(_ context.Context, id domain.ID, authorID userdomain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok || r.posts[i].AuthorID != authorID {
		return postrepo.ErrPostNotFound
	}
	delete(r.byID, id)
	r.posts = append(r.posts[:i], r.posts[i+1:]...)
	for j := i; j < len(r.posts); j++ {
		r.byID[r.posts[j].ID] = j
	}
	return nil
}
