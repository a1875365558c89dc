package photo

import (
	"context"
	"errors"
	"fmt"

	"github.com/handleme/gallery/database/models"
	"github.com/handleme/gallery/database/repo/photos"
	"gorm.io/gorm"
)

// ModerationService drives the pending -> approved/rejected transitions.
// Authorization happens at the API layer; callers of this service are
// already authenticated.
type ModerationService struct {
	repo     *photos.Repository
	onChange func()
}

func NewModerationService(repo *photos.Repository) *ModerationService {
	return &ModerationService{repo: repo}
}

// OnChange registers a hook invoked after a successful status change,
// used to drop the cached gallery listing.
func (s *ModerationService) OnChange(fn func()) {
	s.onChange = fn
}

// ListPending returns the full moderation queue, newest first.
func (s *ModerationService) ListPending(ctx context.Context) ([]*models.Photo, error) {
	return s.repo.ListByStatus(ctx, models.PhotoStatusPending)
}

// Approve publishes a photo. Approving an already-approved photo is a
// no-op success; like_count is never touched.
func (s *ModerationService) Approve(ctx context.Context, identifier string) error {
	return s.setStatus(ctx, identifier, models.PhotoStatusApproved)
}

// Reject marks a photo rejected, with the same idempotence as Approve.
func (s *ModerationService) Reject(ctx context.Context, identifier string) error {
	return s.setStatus(ctx, identifier, models.PhotoStatusRejected)
}

func (s *ModerationService) setStatus(ctx context.Context, identifier, status string) error {
	if identifier == "" {
		return newValidationError("Photo identifier is required")
	}

	if err := s.repo.UpdateStatus(ctx, identifier, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhotoNotFound
		}
		return fmt.Errorf("failed to update photo status: %w", err)
	}

	if s.onChange != nil {
		s.onChange()
	}
	return nil
}
