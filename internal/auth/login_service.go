package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/handleme/gallery/database/models"
	"github.com/handleme/gallery/database/repo/tokens"
	"github.com/handleme/gallery/utils"
	"gorm.io/gorm"
)

var ErrInvalidLoginToken = errors.New("invalid or expired sign-in token")

// LoginService implements passwordless moderator sign-in: a one-time
// token delivered out of band, redeemable once for a JWT session.
type LoginService struct {
	repo       *tokens.Repository
	mailer     Mailer
	tokens     *TokenManager
	adminEmail string
	tokenTTL   time.Duration
	baseURL    string
}

func NewLoginService(repo *tokens.Repository, mailer Mailer, tokenManager *TokenManager, adminEmail string, tokenTTL time.Duration, baseURL string) *LoginService {
	if tokenTTL <= 0 {
		tokenTTL = 15 * time.Minute
	}
	return &LoginService{
		repo:       repo,
		mailer:     mailer,
		tokens:     tokenManager,
		adminEmail: adminEmail,
		tokenTTL:   tokenTTL,
		baseURL:    baseURL,
	}
}

// RequestLink issues a sign-in token for the given email and hands the
// link to the mailer. Unknown emails are ignored without error so the
// endpoint does not reveal which address is the moderator's.
func (s *LoginService) RequestLink(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return errors.New("email is required")
	}

	if s.adminEmail == "" || !strings.EqualFold(email, s.adminEmail) {
		return nil
	}

	raw, err := utils.GenerateRandomToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate sign-in token: %w", err)
	}

	record := &models.LoginToken{
		TokenHash: hashToken(raw),
		Email:     email,
		ExpiresAt: time.Now().Add(s.tokenTTL),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to store sign-in token: %w", err)
	}

	link := fmt.Sprintf("%s/admin/verify?token=%s", s.baseURL, raw)
	if err := s.mailer.SendLoginLink(email, link); err != nil {
		return fmt.Errorf("failed to deliver sign-in link: %w", err)
	}
	return nil
}

// Redeem exchanges a valid one-time token for a signed session token.
func (s *LoginService) Redeem(ctx context.Context, rawToken string) (string, error) {
	if rawToken == "" {
		return "", ErrInvalidLoginToken
	}

	record, err := s.repo.GetByHash(ctx, hashToken(rawToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidLoginToken
		}
		return "", fmt.Errorf("failed to look up sign-in token: %w", err)
	}

	if !record.Valid(time.Now()) {
		return "", ErrInvalidLoginToken
	}

	// Redeem is conditional on used=false, so a raced second verify
	// loses here instead of yielding two sessions from one token.
	if err := s.repo.Redeem(ctx, record.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidLoginToken
		}
		return "", fmt.Errorf("failed to redeem sign-in token: %w", err)
	}

	return s.tokens.Issue(record.Email)
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
