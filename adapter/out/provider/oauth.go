package provider

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/drive/v3"
	gmailapi "google.golang.org/api/gmail/v1"
)

// GoogleConfig holds Google OAuth app credentials.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// NewOAuthConfig builds the oauth2 config shared by the Gmail and artifacts
// adapters. The scope set matches what stored connections were granted.
func NewOAuthConfig(cfg *GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes: []string{
			gmailapi.GmailReadonlyScope,
			calendar.CalendarEventsScope,
			drive.DriveFileScope,
		},
		Endpoint: google.Endpoint,
	}
}
