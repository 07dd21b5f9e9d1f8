package http

import (
	"time"

	"github.com/postboard-app/postboard/backend/internal/post/domain"
)

type AuthorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type PostResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Author    AuthorResponse `json:"author"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func ToPostResponse(p domain.PostWithAuthor) PostResponse {
	return PostResponse{
		ID:      string(p.ID),
		Title:   p.Title,
		Content: p.Content,
		Author: AuthorResponse{
			ID:       string(p.Author.ID),
			Username: p.Author.Username,
			Email:    p.Author.Email,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func ToPostResponses(posts []domain.PostWithAuthor) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToPostResponse(p))
	}
	return out
}
