package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// ProductRepository defines persistence for product listings.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, limit int) ([]Product, error)
}

// StoryRepository defines persistence for artisan stories.
type StoryRepository interface {
	Create(ctx context.Context, story *Story) (*Story, error)
	List(ctx context.Context, limit int) ([]Story, error)
	ListByArtisan(ctx context.Context, artisanID string, limit int) ([]Story, error)
}
