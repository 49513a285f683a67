package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio/internal/model"
)

// ListFilter narrows list queries.
type ListFilter struct {
	PublishedOnly bool
}

// BlogRepository defines blog post persistence operations.
type BlogRepository interface {
	Create(ctx context.Context, post *model.BlogPost) error
	Update(ctx context.Context, post *model.BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	List(ctx context.Context, filter ListFilter) ([]model.BlogPost, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog post repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// Create inserts a new post.
func (r *blogRepository) Create(ctx context.Context, post *model.BlogPost) error {
	return r.db.WithContext(ctx).Omit("Author").Create(post).Error
}

// Update saves every column of an existing post.
func (r *blogRepository) Update(ctx context.Context, post *model.BlogPost) error {
	return r.db.WithContext(ctx).Omit("Author").Save(post).Error
}

// Delete removes a post permanently so its slug can be reused.
func (r *blogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BlogPost{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a post by ID with its author.
func (r *blogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := r.withAuthor(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug finds a post by slug with its author.
func (r *blogRepository) FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := r.withAuthor(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns posts newest first.
func (r *blogRepository) List(ctx context.Context, filter ListFilter) ([]model.BlogPost, error) {
	q := r.withAuthor(ctx)
	if filter.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	posts := []model.BlogPost{}
	if err := q.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *blogRepository) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Author", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "username")
	})
}
