package auth

import (
	"log"

	"github.com/handleme/gallery/utils"
)

// Mailer delivers a sign-in link to the moderator. Real delivery is a
// deployment concern; the default implementation writes the link to the
// server log.
type Mailer interface {
	SendLoginLink(email, link string) error
}

// LogMailer logs the sign-in link instead of sending mail.
type LogMailer struct{}

func (LogMailer) SendLoginLink(email, link string) error {
	log.Printf("Sign-in link for %s: %s", utils.SanitizeLogMessage(email), link)
	return nil
}
