package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shilpkart/server/internal/domain"
	"github.com/shilpkart/server/internal/sqlinline"
)

// StoryRepositoryPG implements domain.StoryRepository backed by PostgreSQL.
type StoryRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewStoryRepository creates a new StoryRepositoryPG.
func NewStoryRepository(pool *pgxpool.Pool) *StoryRepositoryPG {
	return &StoryRepositoryPG{pool: pool}
}

// Create inserts a new artisan story.
func (r *StoryRepositoryPG) Create(ctx context.Context, story *domain.Story) (*domain.Story, error) {
	row := r.pool.QueryRow(ctx, sqlinline.QInsertStory,
		story.ID,
		story.ArtisanID,
		story.Title,
		story.Content,
		story.AudioURL,
		story.VideoURL,
	)
	return scanStory(row)
}

// List returns the most recent stories.
func (r *StoryRepositoryPG) List(ctx context.Context, limit int) ([]domain.Story, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, sqlinline.QSelectRecentStories, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStories(rows)
}

// ListByArtisan returns the most recent stories published by one artisan.
func (r *StoryRepositoryPG) ListByArtisan(ctx context.Context, artisanID string, limit int) ([]domain.Story, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, sqlinline.QSelectStoriesByArtisan, artisanID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStories(rows)
}

func collectStories(rows pgx.Rows) ([]domain.Story, error) {
	var stories []domain.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, *s)
	}
	return stories, rows.Err()
}

func scanStory(row pgx.Row) (*domain.Story, error) {
	var s domain.Story
	if err := row.Scan(&s.ID, &s.ArtisanID, &s.Title, &s.Content, &s.AudioURL, &s.VideoURL, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

var _ domain.StoryRepository = (*StoryRepositoryPG)(nil)
