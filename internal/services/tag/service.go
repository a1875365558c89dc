package tag

import (
	"context"
	"log"

	"github.com/handleme/gallery/database"
	"github.com/handleme/gallery/database/repo/tags"
)

// Service serves the submission-form tag choices.
type Service struct {
	repo *tags.Repository
}

func NewService(repo *tags.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the reference tag names ordered by name. An empty or
// unreachable table falls back to the built-in default set.
func (s *Service) List(ctx context.Context) []string {
	list, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("Failed to load tags, falling back to defaults: %v", err)
		return database.DefaultTags
	}
	if len(list) == 0 {
		return database.DefaultTags
	}

	names := make([]string, 0, len(list))
	for _, t := range list {
		names = append(names, t.Name)
	}
	return names
}
