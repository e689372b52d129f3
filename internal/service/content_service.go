package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"crmhub/internal/cache"
	"crmhub/internal/cms"
	apperrors "crmhub/internal/errors"
)

const (
	objectCacheTTL = 5 * time.Minute
	// settingsType is the singleton settings object type in the bucket.
	settingsType = "settings"
)

// ContentService fronts the headless content backend for CMS-managed
// resources (contacts, companies, deals, ...). Single-object reads are cached
// in Redis; writes invalidate the cached copy.
type ContentService interface {
	List(ctx context.Context, q cms.Query) ([]cms.Object, int, error)
	// Get returns (nil, nil) when the object does not exist.
	Get(ctx context.Context, id string) (*cms.Object, error)
	Create(ctx context.Context, draft cms.ObjectDraft) (*cms.Object, error)
	Update(ctx context.Context, id string, patch cms.ObjectPatch) (*cms.Object, error)
	Delete(ctx context.Context, id string) error
	// GetSettings returns the singleton settings object, nil when unset.
	GetSettings(ctx context.Context) (*cms.Object, error)
	UpdateSettings(ctx context.Context, patch cms.ObjectPatch) (*cms.Object, error)
}

type contentService struct {
	client *cms.Client
	cache  *cache.Client
}

// NewContentService creates a new content service.
func NewContentService(client *cms.Client, cacheClient *cache.Client) ContentService {
	return &contentService{
		client: client,
		cache:  cacheClient,
	}
}

func objectCacheKey(id string) string {
	return fmt.Sprintf("cms:object:%s", id)
}

func (s *contentService) List(ctx context.Context, q cms.Query) ([]cms.Object, int, error) {
	objects, total, err := s.client.ListObjects(ctx, q)
	if err != nil {
		return nil, 0, mapContentError(err)
	}
	return objects, total, nil
}

func (s *contentService) Get(ctx context.Context, id string) (*cms.Object, error) {
	if data, _ := s.cache.Get(ctx, objectCacheKey(id)); data != nil {
		var cached cms.Object
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	object, err := s.client.GetObject(ctx, id)
	if err != nil {
		return nil, mapContentError(err)
	}
	if object == nil {
		return nil, nil
	}

	if payload, err := json.Marshal(object); err == nil {
		_ = s.cache.Set(ctx, objectCacheKey(id), payload, objectCacheTTL)
	}
	return object, nil
}

func (s *contentService) Create(ctx context.Context, draft cms.ObjectDraft) (*cms.Object, error) {
	object, err := s.client.CreateObject(ctx, draft)
	if err != nil {
		return nil, mapContentError(err)
	}
	return object, nil
}

func (s *contentService) Update(ctx context.Context, id string, patch cms.ObjectPatch) (*cms.Object, error) {
	object, err := s.client.UpdateObject(ctx, id, patch)
	if err != nil {
		return nil, mapContentError(err)
	}
	_ = s.cache.Delete(ctx, objectCacheKey(id))
	return object, nil
}

func (s *contentService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteObject(ctx, id); err != nil {
		return mapContentError(err)
	}
	_ = s.cache.Delete(ctx, objectCacheKey(id))
	return nil
}

func (s *contentService) GetSettings(ctx context.Context) (*cms.Object, error) {
	objects, _, err := s.client.ListObjects(ctx, cms.Query{Type: settingsType, Limit: 1})
	if err != nil {
		return nil, mapContentError(err)
	}
	if len(objects) == 0 {
		return nil, nil
	}
	return &objects[0], nil
}

// UpdateSettings patches the singleton settings object, creating it on first use.
func (s *contentService) UpdateSettings(ctx context.Context, patch cms.ObjectPatch) (*cms.Object, error) {
	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		title := patch.Title
		if title == "" {
			title = "Settings"
		}
		return s.Create(ctx, cms.ObjectDraft{
			Title:    title,
			Type:     settingsType,
			Metadata: patch.Metadata,
		})
	}
	return s.Update(ctx, current.ID, patch)
}

// mapContentError translates transport errors into the app taxonomy.
// Exhausted retries collapse to the upstream error; a 404 on a write means
// the target object is gone; other 4xx answers keep their status.
func mapContentError(err error) error {
	if errors.Is(err, cms.ErrExhausted) {
		return fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	var apiErr *cms.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			return apperrors.ErrNotFound
		}
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apperrors.NewHTTPError(apiErr.StatusCode, "content backend rejected the request")
		}
	}
	return err
}
