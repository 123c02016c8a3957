package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"comics-service/internal/models"
)

var ErrComicNotFound = errors.New("comic not found")

// ComicRepository abstracts comic and page persistence.
type ComicRepository interface {
	GetComic(ctx context.Context, comicID int) (models.ComicDetail, error)
	// ListComics returns all comics, or only one author's when userID > 0.
	ListComics(ctx context.Context, userID int) ([]models.Comic, error)
	CreateComic(ctx context.Context, comic models.NewComic) (int, error)
}

// ComicRepo is a sqlx implementation of ComicRepository.
type ComicRepo struct {
	db *sqlx.DB
}

// NewComicRepo constructs a ComicRepo.
func NewComicRepo(db *sqlx.DB) *ComicRepo {
	return &ComicRepo{db: db}
}

// GetComic fetches one comic with author profile, aggregate counters and
// its pages ordered by page number.
func (r *ComicRepo) GetComic(ctx context.Context, comicID int) (models.ComicDetail, error) {
	query := `SELECT c.id, c.user_id, c.title, c.description, c.genre, c.cover_url, c.created_at, c.updated_at,
            u.username, u.display_name, u.avatar_url,
            COALESCE(AVG(r.rating), 0) AS avg_rating,
            COUNT(DISTINCT l.id) AS likes_count,
            COUNT(DISTINCT cm.id) AS comments_count
        FROM comics c
        JOIN users u ON c.user_id = u.id
        LEFT JOIN ratings r ON c.id = r.comic_id
        LEFT JOIN likes l ON c.id = l.comic_id
        LEFT JOIN comments cm ON c.id = cm.comic_id
        WHERE c.id = $1
        GROUP BY c.id, u.id`
	var comic models.ComicDetail
	if err := r.db.GetContext(ctx, &comic, query, comicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ComicDetail{}, ErrComicNotFound
		}
		return models.ComicDetail{}, err
	}

	pages := []models.ComicPage{}
	if err := r.db.SelectContext(ctx, &pages,
		`SELECT id, comic_id, page_number, image_url, caption FROM comic_pages WHERE comic_id = $1 ORDER BY page_number`,
		comicID); err != nil {
		return models.ComicDetail{}, err
	}
	comic.Pages = pages
	return comic, nil
}

// ListComics returns comics newest-first with author profile and aggregate
// rating/like figures.
func (r *ComicRepo) ListComics(ctx context.Context, userID int) ([]models.Comic, error) {
	query := `SELECT c.id, c.user_id, c.title, c.description, c.genre, c.cover_url, c.created_at, c.updated_at,
            u.username, u.display_name, u.avatar_url,
            COALESCE(AVG(r.rating), 0) AS avg_rating,
            COUNT(DISTINCT l.id) AS likes_count
        FROM comics c
        JOIN users u ON c.user_id = u.id
        LEFT JOIN ratings r ON c.id = r.comic_id
        LEFT JOIN likes l ON c.id = l.comic_id`

	var comics []models.Comic
	var err error
	if userID > 0 {
		err = r.db.SelectContext(ctx, &comics, query+` WHERE c.user_id = $1 GROUP BY c.id, u.id ORDER BY c.created_at DESC`, userID)
	} else {
		err = r.db.SelectContext(ctx, &comics, query+` GROUP BY c.id, u.id ORDER BY c.created_at DESC`)
	}
	return comics, err
}

// CreateComic inserts the comic and its pages in one transaction and
// returns the new comic id.
func (r *ComicRepo) CreateComic(ctx context.Context, comic models.NewComic) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var comicID int
	if err = tx.QueryRowxContext(ctx,
		`INSERT INTO comics (user_id, title, description, genre, cover_url) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		comic.UserID, comic.Title, comic.Description, comic.Genre, comic.CoverURL).Scan(&comicID); err != nil {
		return 0, err
	}

	for _, page := range comic.Pages {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO comic_pages (comic_id, page_number, image_url, caption) VALUES ($1, $2, $3, $4)`,
			comicID, page.PageNumber, page.ImageURL, page.Caption); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return comicID, nil
}
