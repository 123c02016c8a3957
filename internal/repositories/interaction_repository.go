package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"comics-service/internal/models"
)

// InteractionRepository abstracts likes, comments and ratings.
type InteractionRepository interface {
	ListComments(ctx context.Context, comicID int) ([]models.Comment, error)
	AddLike(ctx context.Context, userID, comicID int) error
	RemoveLike(ctx context.Context, userID, comicID int) error
	CountLikes(ctx context.Context, comicID int) (int, error)
	AddComment(ctx context.Context, userID, comicID int, content string) (models.Comment, error)
	UpsertRating(ctx context.Context, userID, comicID, rating int) error
	AverageRating(ctx context.Context, comicID int) (float64, error)
}

// InteractionRepo is a sqlx implementation of InteractionRepository.
type InteractionRepo struct {
	db *sqlx.DB
}

// NewInteractionRepo constructs an InteractionRepo.
func NewInteractionRepo(db *sqlx.DB) *InteractionRepo {
	return &InteractionRepo{db: db}
}

// ListComments returns a comic's comments newest-first with commenter profiles.
func (r *InteractionRepo) ListComments(ctx context.Context, comicID int) ([]models.Comment, error) {
	query := `SELECT c.id, c.user_id, c.comic_id, c.content, c.created_at, c.updated_at,
            u.username, u.display_name, u.avatar_url
        FROM comments c
        JOIN users u ON c.user_id = u.id
        WHERE c.comic_id = $1
        ORDER BY c.created_at DESC`
	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, query, comicID)
	return comments, err
}

// AddLike records a like. Inserting an existing pair is a silent no-op.
func (r *InteractionRepo) AddLike(ctx context.Context, userID, comicID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO likes (user_id, comic_id) VALUES ($1, $2) ON CONFLICT (user_id, comic_id) DO NOTHING`,
		userID, comicID)
	return err
}

// RemoveLike deletes the like pair if present.
func (r *InteractionRepo) RemoveLike(ctx context.Context, userID, comicID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE user_id=$1 AND comic_id=$2`, userID, comicID)
	return err
}

// CountLikes returns the comic's like total.
func (r *InteractionRepo) CountLikes(ctx context.Context, comicID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM likes WHERE comic_id=$1`, comicID)
	return count, err
}

// AddComment stores a comment and returns the stored row.
func (r *InteractionRepo) AddComment(ctx context.Context, userID, comicID int, content string) (models.Comment, error) {
	var comment models.Comment
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO comments (user_id, comic_id, content) VALUES ($1, $2, $3) RETURNING id, user_id, comic_id, content, created_at, updated_at`,
		userID, comicID, content).
		Scan(&comment.ID, &comment.UserID, &comment.ComicID, &comment.Content, &comment.CreatedAt, &comment.UpdatedAt)
	return comment, err
}

// UpsertRating inserts the user's rating or replaces the previous one,
// refreshing updated_at on conflict.
func (r *InteractionRepo) UpsertRating(ctx context.Context, userID, comicID, rating int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ratings (user_id, comic_id, rating) VALUES ($1, $2, $3)
        ON CONFLICT (user_id, comic_id)
        DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()`,
		userID, comicID, rating)
	return err
}

// AverageRating returns the comic-wide average, 0 when unrated.
func (r *InteractionRepo) AverageRating(ctx context.Context, comicID int) (float64, error) {
	var avg float64
	err := r.db.GetContext(ctx, &avg, `SELECT COALESCE(AVG(rating), 0) FROM ratings WHERE comic_id=$1`, comicID)
	return avg, err
}
