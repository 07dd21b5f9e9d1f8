package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/postboard-app/postboard/backend/internal/common/db"
	"github.com/postboard-app/postboard/backend/internal/post/domain"
	userdomain "github.com/postboard-app/postboard/backend/internal/user/domain"
)

type Repository interface {
	Create(ctx context.Context, post domain.Post) error
	FindAll(ctx context.Context) ([]domain.PostWithAuthor, error)
	FindByID(ctx context.Context, id domain.ID) (domain.PostWithAuthor, error)
	FindByAuthor(ctx context.Context, authorID userdomain.ID) ([]domain.PostWithAuthor, error)
	// UpdateOwned applies a partial update whose predicate matches both
	// the post id and the author id in a single statement. A post owned
	// by someone else comes back as ErrPostNotFound, same as a missing
	// one.
	UpdateOwned(ctx context.Context, id domain.ID, authorID userdomain.ID, title, content *string, updatedAt time.Time) (domain.Post, error)
	// DeleteOwned removes the post only when the author id matches.
	DeleteOwned(ctx context.Context, id domain.ID, authorID userdomain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const selectWithAuthor = `
	SELECT p.id, p.title, p.content, p.author_id, p.created_at, p.updated_at,
	       u.id, u.username, u.email
	FROM posts p
	JOIN users u ON u.id = p.author_id`

func (r *PgRepository) Create(ctx context.Context, post domain.Post) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO posts (id, title, content, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		string(post.ID),
		post.Title,
		post.Content,
		string(post.AuthorID),
		post.CreatedAt,
		post.UpdatedAt,
	)
	db.ObserveQuery("create_post", "posts", start, err)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *PgRepository) FindAll(ctx context.Context) ([]domain.PostWithAuthor, error) {
	start := time.Now()
	rows, err := r.pool.Query(ctx, selectWithAuthor+` ORDER BY p.created_at DESC`)
	if err != nil {
		db.ObserveQuery("list_posts", "posts", start, err)
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	db.ObserveQuery("list_posts", "posts", start, err)
	return posts, err
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.PostWithAuthor, error) {
	start := time.Now()
	row := r.pool.QueryRow(ctx, selectWithAuthor+` WHERE p.id = $1`, string(id))

	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			db.ObserveQuery("find_post_by_id", "posts", start, nil)
			return domain.PostWithAuthor{}, ErrPostNotFound
		}
		db.ObserveQuery("find_post_by_id", "posts", start, err)
		return domain.PostWithAuthor{}, fmt.Errorf("failed to find post by id: %w", err)
	}

	db.ObserveQuery("find_post_by_id", "posts", start, nil)
	return post, nil
}

func (r *PgRepository) FindByAuthor(ctx context.Context, authorID userdomain.ID) ([]domain.PostWithAuthor, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		selectWithAuthor+` WHERE p.author_id = $1 ORDER BY p.created_at DESC`,
		string(authorID),
	)
	if err != nil {
		db.ObserveQuery("list_posts_by_author", "posts", start, err)
		return nil, fmt.Errorf("failed to list posts by author: %w", err)
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	db.ObserveQuery("list_posts_by_author", "posts", start, err)
	return posts, err
}

func (r *PgRepository) UpdateOwned(ctx context.Context, id domain.ID, authorID userdomain.ID, title, content *string, updatedAt time.Time) (domain.Post, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`UPDATE posts
		 SET title = COALESCE($3, title),
		     content = COALESCE($4, content),
		     updated_at = $5
		 WHERE id = $1 AND author_id = $2
		 RETURNING id, title, content, author_id, created_at, updated_at`,
		string(id),
		string(authorID),
		title,
		content,
		updatedAt,
	)

	var post domain.Post
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			db.ObserveQuery("update_post", "posts", start, nil)
			return domain.Post{}, ErrPostNotFound
		}
		db.ObserveQuery("update_post", "posts", start, err)
		return domain.Post{}, fmt.Errorf("failed to update post: %w", err)
	}

	db.ObserveQuery("update_post", "posts", start, nil)
	return post, nil
}

func (r *PgRepository) DeleteOwned(ctx context.Context, id domain.ID, authorID userdomain.ID) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`DELETE FROM posts WHERE id = $1 AND author_id = $2`,
		string(id),
		string(authorID),
	)
	db.ObserveQuery("delete_post", "posts", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func scanPosts(rows pgx.Rows) ([]domain.PostWithAuthor, error) {
	var posts []domain.PostWithAuthor
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return posts, nil
}

func scanPost(row pgx.Row) (domain.PostWithAuthor, error) {
	var post domain.PostWithAuthor
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Author.ID,
		&post.Author.Username,
		&post.Author.Email,
	)
	return post, err
}

var ErrPostNotFound = errors.New("post not found")
