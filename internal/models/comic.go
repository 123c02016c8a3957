package models

import "time"

// Comic is a published comic with its author's profile and aggregate
// rating/like figures, the shape returned by list queries.
type Comic struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Genre       string    `db:"genre" json:"genre"`
	CoverURL    string    `db:"cover_url" json:"cover_url"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"display_name"`
	AvatarURL   string    `db:"avatar_url" json:"avatar_url"`
	AvgRating   float64   `db:"avg_rating" json:"avg_rating"`
	LikesCount  int       `db:"likes_count" json:"likes_count"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ComicDetail adds the comment count and the ordered pages to a Comic.
type ComicDetail struct {
	Comic
	CommentsCount int         `db:"comments_count" json:"comments_count"`
	Pages         []ComicPage `json:"pages"`
}

// ComicPage is a single page of a comic, addressable by page number.
type ComicPage struct {
	ID         int    `db:"id" json:"id"`
	ComicID    int    `db:"comic_id" json:"comic_id"`
	PageNumber int    `db:"page_number" json:"page_number"`
	ImageURL   string `db:"image_url" json:"image_url"`
	Caption    string `db:"caption" json:"caption"`
}

// NewComic carries the fields accepted when publishing a comic.
type NewComic struct {
	UserID      int
	Title       string
	Description string
	Genre       string
	CoverURL    string
	Pages       []NewComicPage
}

// NewComicPage is one page supplied at publish time.
type NewComicPage struct {
	PageNumber int    `json:"page_number"`
	ImageURL   string `json:"image_url"`
	Caption    string `json:"caption"`
}
