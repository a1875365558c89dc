package photo

import (
	"context"
	"errors"
	"fmt"

	"github.com/handleme/gallery/database/models"
	"github.com/handleme/gallery/database/repo/likes"
	"github.com/handleme/gallery/database/repo/photos"
	"gorm.io/gorm"
)

// LikeResult reports the outcome of a like attempt. A duplicate like is
// a successful outcome with Incremented=false, not an error.
type LikeResult struct {
	Incremented bool
	LikeCount   int64
}

// LikeService records per-visitor likes and keeps the denormalized
// counter in step. De-duplication rests on the database's composite
// unique index and the increment is a single SQL update, so two racing
// callers can never lose an update or double count.
type LikeService struct {
	photoRepo *photos.Repository
	likeRepo  *likes.Repository
	onChange  func()
}

func NewLikeService(photoRepo *photos.Repository, likeRepo *likes.Repository) *LikeService {
	return &LikeService{
		photoRepo: photoRepo,
		likeRepo:  likeRepo,
	}
}

// OnChange registers a hook invoked after a successful new like, used
// to drop the cached gallery listing.
func (s *LikeService) OnChange(fn func()) {
	s.onChange = fn
}

// Like records one visitor fingerprint's like on one photo.
func (s *LikeService) Like(ctx context.Context, photoIdentifier, fingerprint string) (*LikeResult, error) {
	if photoIdentifier == "" || fingerprint == "" {
		return nil, newValidationError("Missing photo_id or anon_fingerprint")
	}

	record, err := s.photoRepo.GetByIdentifier(ctx, photoIdentifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to look up photo: %w", err)
	}

	like := &models.Like{
		PhotoID:     record.ID,
		Fingerprint: fingerprint,
	}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Already liked by this visitor; the counter stays put.
			return &LikeResult{Incremented: false, LikeCount: record.LikeCount}, nil
		}
		return nil, fmt.Errorf("failed to record like: %w", err)
	}

	newCount, err := s.photoRepo.IncrementLikeCount(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to increment like count: %w", err)
	}

	if s.onChange != nil {
		s.onChange()
	}

	return &LikeResult{Incremented: true, LikeCount: newCount}, nil
}
