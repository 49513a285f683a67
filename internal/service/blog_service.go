package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/events"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

const (
	blogCacheTTL     = 5 * time.Minute
	blogListCacheKey = "blogs:published"
	blogResource     = "blog"
)

// BlogService handles blog post operations. A nil claims value means an
// anonymous caller, who only ever sees published posts.
type BlogService interface {
	List(ctx context.Context, claims *auth.Claims, publishedOnly bool) ([]model.BlogPost, error)
	Get(ctx context.Context, claims *auth.Claims, id string) (*model.BlogPost, error)
	GetBySlug(ctx context.Context, claims *auth.Claims, slug string) (*model.BlogPost, error)
	Create(ctx context.Context, claims *auth.Claims, in *BlogInput) (*model.BlogPost, error)
	Update(ctx context.Context, claims *auth.Claims, id string, in *BlogInput) (*model.BlogPost, error)
	Delete(ctx context.Context, claims *auth.Claims, id string) error
}

type blogService struct {
	repo      repository.BlogRepository
	cache     *cache.Client
	publisher events.Publisher
	topic     string
	log       *zap.Logger
}

// NewBlogService creates a new blog service. Publish events go to topic.
func NewBlogService(repo repository.BlogRepository, cache *cache.Client, publisher events.Publisher, topic string, log *zap.Logger) BlogService {
	return &blogService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		topic:     topic,
		log:       log,
	}
}

func blogIDKey(id uuid.UUID) string { return "blog:id:" + id.String() }

func blogSlugKey(slug string) string { return "blog:slug:" + slug }

func (s *blogService) List(ctx context.Context, claims *auth.Claims, publishedOnly bool) ([]model.BlogPost, error) {
	ctx, span := startSpan(ctx, "BlogService.List")
	defer span.End()

	publishedOnly = publishedOnly || claims == nil
	if publishedOnly {
		var cached []model.BlogPost
		if s.cache.GetJSON(ctx, blogListCacheKey, &cached) {
			return cached, nil
		}
	}

	posts, err := s.repo.List(ctx, repository.ListFilter{PublishedOnly: publishedOnly})
	if err != nil {
		return nil, fail(span, fmt.Errorf("list posts: %w", err))
	}
	if publishedOnly {
		s.cache.SetJSON(ctx, blogListCacheKey, posts, blogCacheTTL)
	}
	return posts, nil
}

func (s *blogService) Get(ctx context.Context, claims *auth.Claims, id string) (*model.BlogPost, error) {
	ctx, span := startSpan(ctx, "BlogService.Get")
	defer span.End()

	postID, err := parseID(id, blogResource)
	if err != nil {
		return nil, err
	}
	return s.readable(ctx, claims, blogIDKey(postID), func() (*model.BlogPost, error) {
		return s.repo.FindByID(ctx, postID)
	})
}

func (s *blogService) GetBySlug(ctx context.Context, claims *auth.Claims, slug string) (*model.BlogPost, error) {
	ctx, span := startSpan(ctx, "BlogService.GetBySlug")
	defer span.End()

	slug = normalizeSlug(slug)
	return s.readable(ctx, claims, blogSlugKey(slug), func() (*model.BlogPost, error) {
		return s.repo.FindBySlug(ctx, slug)
	})
}

// readable loads a post and hides drafts from anonymous callers. Only
// published posts are cached.
func (s *blogService) readable(ctx context.Context, claims *auth.Claims, key string, load func() (*model.BlogPost, error)) (*model.BlogPost, error) {
	if claims == nil {
		var cached model.BlogPost
		if s.cache.GetJSON(ctx, key, &cached) {
			return &cached, nil
		}
	}

	post, err := load()
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound(blogResource)
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	if !post.Published {
		if claims == nil {
			return nil, apperrors.NotFound(blogResource)
		}
		return post, nil
	}
	s.cache.SetJSON(ctx, key, post, blogCacheTTL)
	return post, nil
}

func (s *blogService) Create(ctx context.Context, claims *auth.Claims, in *BlogInput) (*model.BlogPost, error) {
	ctx, span := startSpan(ctx, "BlogService.Create")
	defer span.End()

	if err := auth.AuthorizeUnowned(claims); err != nil {
		return nil, err
	}
	authorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	slug, err := slugOf(in.Slug)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, slug, uuid.Nil); err != nil {
		return nil, fail(span, err)
	}

	post := &model.BlogPost{
		Title:     in.Title,
		Slug:      slug,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		AuthorID:  authorID,
		Tags:      datatypes.JSONSlice[string](orEmpty(in.Tags)),
		Published: in.Published,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrSlugExists
		}
		return nil, fail(span, fmt.Errorf("create post: %w", err))
	}
	post.Author = &model.Author{ID: authorID, Username: claims.Username}

	s.invalidate(ctx, post.ID, post.Slug)
	if post.Published {
		s.announce(ctx, post)
	}
	s.log.Info("blog post created", zap.String("post_id", post.ID.String()), zap.String("author_id", claims.UserID))
	return post, nil
}

func (s *blogService) Update(ctx context.Context, claims *auth.Claims, id string, in *BlogInput) (*model.BlogPost, error) {
	ctx, span := startSpan(ctx, "BlogService.Update")
	defer span.End()

	post, err := s.owned(ctx, claims, id)
	if err != nil {
		return nil, fail(span, err)
	}

	oldSlug := post.Slug
	slug, err := slugOf(in.Slug)
	if err != nil {
		return nil, err
	}
	if slug != oldSlug {
		if err := s.ensureSlugFree(ctx, slug, post.ID); err != nil {
			return nil, fail(span, err)
		}
	}

	wasPublished := post.Published
	post.Title = in.Title
	post.Slug = slug
	post.Content = in.Content
	post.Excerpt = in.Excerpt
	post.Tags = datatypes.JSONSlice[string](orEmpty(in.Tags))
	post.Published = in.Published

	if err := s.repo.Update(ctx, post); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrSlugExists
		}
		return nil, fail(span, fmt.Errorf("update post: %w", err))
	}

	s.invalidate(ctx, post.ID, oldSlug, post.Slug)
	if post.Published && !wasPublished {
		s.announce(ctx, post)
	}
	s.log.Info("blog post updated", zap.String("post_id", post.ID.String()))
	return post, nil
}

func (s *blogService) Delete(ctx context.Context, claims *auth.Claims, id string) error {
	ctx, span := startSpan(ctx, "BlogService.Delete")
	defer span.End()

	post, err := s.owned(ctx, claims, id)
	if err != nil {
		return fail(span, err)
	}
	if err := s.repo.Delete(ctx, post.ID); err != nil {
		if isNotFound(err) {
			return apperrors.NotFound(blogResource)
		}
		return fail(span, fmt.Errorf("delete post: %w", err))
	}

	s.invalidate(ctx, post.ID, post.Slug)
	s.log.Info("blog post deleted", zap.String("post_id", post.ID.String()))
	return nil
}

// owned loads a post for mutation: 404 first, then the ownership check.
func (s *blogService) owned(ctx context.Context, claims *auth.Claims, id string) (*model.BlogPost, error) {
	if claims == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	postID, err := parseID(id, blogResource)
	if err != nil {
		return nil, err
	}
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound(blogResource)
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	if err := auth.AuthorizeMutation(claims, post.AuthorID.String()); err != nil {
		return nil, err
	}
	return post, nil
}

// ensureSlugFree fails with ErrSlugExists when a post other than self uses slug.
func (s *blogService) ensureSlugFree(ctx context.Context, slug string, self uuid.UUID) error {
	existing, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("check slug: %w", err)
	}
	if existing.ID != self {
		return apperrors.ErrSlugExists
	}
	return nil
}

func (s *blogService) invalidate(ctx context.Context, id uuid.UUID, slugs ...string) {
	keys := []string{blogListCacheKey, blogIDKey(id)}
	for _, slug := range slugs {
		keys = append(keys, blogSlugKey(slug))
	}
	_ = s.cache.Delete(ctx, keys...)
}

// announce publishes a BlogPublished event. Failures are logged, not returned.
func (s *blogService) announce(ctx context.Context, post *model.BlogPost) {
	event := events.BlogPublished{
		ID:          post.ID.String(),
		Slug:        post.Slug,
		Title:       post.Title,
		AuthorID:    post.AuthorID.String(),
		PublishedAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, s.topic, event.ID, event); err != nil {
		s.log.Warn("publish blog event failed", zap.String("post_id", event.ID), zap.Error(err))
	}
}
