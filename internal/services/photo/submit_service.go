package photo

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/handleme/gallery/database/models"
	"github.com/handleme/gallery/database/repo/photos"
	"github.com/handleme/gallery/storage"
	"github.com/handleme/gallery/utils"
	"github.com/handleme/gallery/utils/generator"
	"github.com/handleme/gallery/utils/mime"
	"github.com/handleme/gallery/utils/validator"
	"github.com/google/uuid"
)

// SubmitInput is one candidate photo submission.
type SubmitInput struct {
	Title    string
	Location string
	Tags     []string
	Consent  bool

	File     io.ReadSeeker
	FileName string
	FileSize int64
}

// SubmitService validates submissions, uploads the blob, and creates
// the pending photo record.
type SubmitService struct {
	repo     *photos.Repository
	store    storage.Provider
	keygen   *generator.KeyGenerator
	maxBytes int64
}

func NewSubmitService(repo *photos.Repository, store storage.Provider, maxBytes int64) *SubmitService {
	return &SubmitService{
		repo:     repo,
		store:    store,
		keygen:   generator.NewKeyGenerator(),
		maxBytes: maxBytes,
	}
}

// validate applies the submission rules in order and returns the first
// failure. Nothing has touched storage or the database yet when a
// validation error comes back.
func (s *SubmitService) validate(in *SubmitInput) error {
	if in.Title == "" {
		return newValidationError("Photo name is required.")
	}
	if in.Location == "" {
		return newValidationError("Location is required (City, State).")
	}
	if !validator.IsCityState(in.Location) {
		return newValidationError("Please use the format: City, ST (example: Austin, TX).")
	}
	if in.File == nil {
		return newValidationError("Pick a photo first.")
	}
	if !in.Consent {
		return newValidationError("Please agree to the submission terms.")
	}
	if in.FileSize > s.maxBytes {
		return newValidationError(fmt.Sprintf("Please upload an image under %dMB.", s.maxBytes>>20))
	}
	return nil
}

// Submit runs the full submission workflow and returns the created
// pending record.
func (s *SubmitService) Submit(ctx context.Context, in *SubmitInput) (*models.Photo, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	contentType, err := mime.SniffContentType(in.File)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect file: %w", err)
	}
	if !validator.IsImageContentType(contentType) {
		return nil, newValidationError("That file doesn't look like an image.")
	}

	key := s.keygen.SubmissionKey(in.FileName)

	if err := s.store.SaveNew(ctx, key, in.File, in.FileSize, contentType); err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	record := &models.Photo{
		Identifier:  uuid.NewString(),
		Title:       in.Title,
		Location:    in.Location,
		ImagePath:   key,
		Status:      models.PhotoStatusPending,
		LikeCount:   0,
		ContentType: contentType,
		FileSize:    in.FileSize,
	}
	record.SetTags(in.Tags)

	if err := s.repo.Create(ctx, record); err != nil {
		// The blob is already committed; it is not cleaned up here.
		// Logged so an operator can reconcile orphans manually.
		log.Printf("Photo insert failed after upload, orphaned blob at %s: %v",
			utils.SanitizeLogMessage(key), err)
		return nil, fmt.Errorf("database insert failed: %w", err)
	}

	return record, nil
}
