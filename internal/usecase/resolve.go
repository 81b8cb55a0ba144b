package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/log"
)

func slugKey(kind, slug string) string {
	return kind + ":slug:" + slug
}

// resolveBySlug reads through the cache. Cache failures only cost a storage read.
func resolveBySlug[T any](ctx context.Context, cache SlugCache, repo entity.Repository[T], kind, slug string) (*T, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, entity.ErrNotFound
	}
	key := slugKey(kind, slug)

	if cache != nil {
		var cached T
		hit, err := cache.Get(ctx, key, &cached)
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("slug cache read failed")
		}
		if hit {
			return &cached, nil
		}
	}

	rec, err := repo.FindOne(ctx, entity.Where("slug", slug))
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Set(ctx, key, rec); err != nil {
			log.WithError(err).WithField("key", key).Warn("slug cache write failed")
		}
	}
	return rec, nil
}

func forgetSlug(ctx context.Context, cache SlugCache, kind, slug string) {
	if cache == nil || slug == "" {
		return
	}
	if err := cache.Delete(ctx, slugKey(kind, slug)); err != nil {
		log.WithError(err).WithField("slug", slug).Warn("slug cache invalidation failed")
	}
}

// pagePatch turns the shared page fields of an update into a storage patch.
func pagePatch(input PageInput) entity.Patch {
	patch := entity.Patch{}
	if input.Name != nil {
		patch["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.Status != nil {
		patch["status"] = string(*input.Status)
	}
	return patch
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
