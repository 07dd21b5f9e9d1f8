package domain

import (
	"time"

	userdomain "github.com/postboard-app/postboard/backend/internal/user/domain"
)

type ID string

type Post struct {
	ID        ID
	Title     string
	Content   string
	AuthorID  userdomain.ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Author carries the public fields of the owning user, resolved
// alongside the post on read paths.
type Author struct {
	ID       userdomain.ID `json:"id"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
}

type PostWithAuthor struct {
	Post
	Author Author
}
