package photo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/handleme/gallery/cache"
	"github.com/handleme/gallery/database/models"
	"github.com/handleme/gallery/database/repo/photos"
	"golang.org/x/sync/singleflight"
)

// Sort modes for the gallery listing. Sorting is a pure projection over
// the fetched approved set, not a separate query per mode.
const (
	SortNewest    = "newest"
	SortMostLiked = "likes"
)

const galleryCacheKey = "gallery:approved"

// View is the public representation of an approved photo.
type View struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	ImagePath string    `json:"image_path"`
	URL       string    `json:"url"`
	LikeCount int64     `json:"like_count"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// GalleryService is the public read path over approved photos.
type GalleryService struct {
	repo     *photos.Repository
	cache    cache.Provider
	cacheTTL time.Duration
	baseURL  string
	group    singleflight.Group
}

func NewGalleryService(repo *photos.Repository, cacheProvider cache.Provider, cacheTTL time.Duration, baseURL string) *GalleryService {
	return &GalleryService{
		repo:     repo,
		cache:    cacheProvider,
		cacheTTL: cacheTTL,
		baseURL:  baseURL,
	}
}

// ListApproved returns all approved photos sorted by the requested
// mode. The unsorted set is cached; sorting happens per call.
func (s *GalleryService) ListApproved(ctx context.Context, sortMode string) ([]*View, error) {
	views, err := s.fetchApproved(ctx)
	if err != nil {
		return nil, err
	}

	sortViews(views, sortMode)
	return views, nil
}

// Invalidate drops the cached approved set. Called after any approve,
// reject, or new like.
func (s *GalleryService) Invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(context.Background(), galleryCacheKey); err != nil {
		log.Printf("Failed to invalidate gallery cache: %v", err)
	}
}

func (s *GalleryService) fetchApproved(ctx context.Context) ([]*View, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, galleryCacheKey); err == nil {
			var views []*View
			if err := json.Unmarshal(data, &views); err == nil {
				return views, nil
			}
		}
	}

	// singleflight collapses concurrent cache fills into one query
	result, err, _ := s.group.Do(galleryCacheKey, func() (interface{}, error) {
		list, err := s.repo.ListByStatus(ctx, models.PhotoStatusApproved)
		if err != nil {
			return nil, fmt.Errorf("failed to list approved photos: %w", err)
		}

		views := make([]*View, 0, len(list))
		for _, record := range list {
			views = append(views, s.toView(record))
		}

		if s.cache != nil {
			if data, err := json.Marshal(views); err == nil {
				if err := s.cache.Set(ctx, galleryCacheKey, data, s.cacheTTL); err != nil {
					log.Printf("Failed to cache gallery listing: %v", err)
				}
			}
		}
		return views, nil
	})
	if err != nil {
		return nil, err
	}

	cached := result.([]*View)

	// Each caller sorts its own copy.
	views := make([]*View, len(cached))
	copy(views, cached)
	return views, nil
}

func (s *GalleryService) toView(record *models.Photo) *View {
	return &View{
		ID:        record.Identifier,
		Title:     record.Title,
		Location:  record.Location,
		ImagePath: record.ImagePath,
		URL:       fmt.Sprintf("%s/photos/file/%s", s.baseURL, record.ImagePath),
		LikeCount: record.LikeCount,
		Tags:      record.TagList(),
		CreatedAt: record.CreatedAt,
	}
}

func sortViews(views []*View, mode string) {
	switch mode {
	case SortMostLiked:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].LikeCount > views[j].LikeCount
		})
	default:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		})
	}
}
