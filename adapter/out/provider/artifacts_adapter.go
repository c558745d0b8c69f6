package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tripscan/core/domain"
	"tripscan/core/port/out"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DefaultBufferMinutes pads the calendar window around the trip dates when
// the user has not set their own buffer.
const DefaultBufferMinutes = 90

// =============================================================================
// Artifacts Adapter
// =============================================================================

// ArtifactsAdapter implements out.ArtifactWriter over Google Drive and
// Calendar. Each artifact is created at most once per trip; ids are recorded
// on the trip row so later polls skip completed work.
type ArtifactsAdapter struct {
	config   *oauth2.Config
	tokens   out.OAuthRepository
	users    out.UserRepository
	trips    out.TripRepository
	activity out.ActivityLogger
}

// NewArtifactsAdapter creates a new artifacts adapter.
func NewArtifactsAdapter(
	config *oauth2.Config,
	tokens out.OAuthRepository,
	users out.UserRepository,
	trips out.TripRepository,
	activity out.ActivityLogger,
) *ArtifactsAdapter {
	return &ArtifactsAdapter{
		config:   config,
		tokens:   tokens,
		users:    users,
		trips:    trips,
		activity: activity,
	}
}

// SyncTrip creates the Drive folder and Calendar event for a trip if the
// user has those surfaces connected. Partial failure is fine: each artifact
// is attempted independently and failures are logged, not returned.
func (a *ArtifactsAdapter) SyncTrip(ctx context.Context, userID, tripID string, itinerary *domain.ParsedItinerary) error {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil || user == nil {
		return err
	}
	trip, err := a.trips.GetByID(ctx, tripID)
	if err != nil || trip == nil {
		return err
	}
	if !user.DriveConnected && !user.CalendarConnected {
		return nil
	}

	conn, err := a.tokens.GetConnection(ctx, userID)
	if err != nil || conn == nil {
		return err
	}
	httpClient := a.config.Client(ctx, &oauth2.Token{
		AccessToken:  conn.AccessToken,
		RefreshToken: conn.RefreshToken,
		TokenType:    "Bearer",
	})

	folderID := trip.DriveFolderID
	eventID := trip.CalendarEventID

	if user.DriveConnected && folderID == "" {
		id, err := a.createDriveFolder(ctx, httpClient, trip)
		if err != nil {
			a.activity.Log(ctx, &domain.ActivityEntry{
				UserID:  userID,
				Level:   domain.ActivityLevelWarn,
				Action:  domain.ActionDriveSyncFail,
				Message: err.Error(),
				TripID:  tripID,
			})
		} else {
			folderID = id
			a.activity.Log(ctx, &domain.ActivityEntry{
				UserID:  userID,
				Level:   domain.ActivityLevelInfo,
				Action:  domain.ActionDriveFolderMade,
				Message: fmt.Sprintf("Created Drive folder for %s", trip.Title),
				TripID:  tripID,
				Meta:    map[string]any{"folder_id": id},
			})
		}
	}

	if user.CalendarConnected && eventID == "" {
		id, err := a.createCalendarEvent(ctx, httpClient, user, trip, itinerary)
		if err != nil {
			a.activity.Log(ctx, &domain.ActivityEntry{
				UserID:  userID,
				Level:   domain.ActivityLevelWarn,
				Action:  domain.ActionCalendarSyncFail,
				Message: err.Error(),
				TripID:  tripID,
			})
		} else {
			eventID = id
			a.activity.Log(ctx, &domain.ActivityEntry{
				UserID:  userID,
				Level:   domain.ActivityLevelInfo,
				Action:  domain.ActionCalendarEventSet,
				Message: fmt.Sprintf("Created calendar event for %s", trip.Title),
				TripID:  tripID,
				Meta:    map[string]any{"event_id": id},
			})
		}
	}

	if folderID != trip.DriveFolderID || eventID != trip.CalendarEventID {
		return a.trips.SetArtifacts(ctx, tripID, folderID, eventID)
	}
	return nil
}

func (a *ArtifactsAdapter) createDriveFolder(ctx context.Context, httpClient *http.Client, trip *domain.Trip) (string, error) {
	svc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return "", fmt.Errorf("failed to create drive service: %w", err)
	}

	name := fmt.Sprintf("%s (%s → %s)",
		trip.Title,
		trip.StartDate.UTC().Format("2006-01-02"),
		trip.EndDate.UTC().Format("2006-01-02"))

	folder, err := svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: "application/vnd.google-apps.folder",
	}).Fields("id, name, webViewLink").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create drive folder: %w", err)
	}
	return folder.Id, nil
}

func (a *ArtifactsAdapter) createCalendarEvent(ctx context.Context, httpClient *http.Client, user *domain.User, trip *domain.Trip, itinerary *domain.ParsedItinerary) (string, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return "", fmt.Errorf("failed to create calendar service: %w", err)
	}

	buffer := time.Duration(user.BufferMinutes) * time.Minute
	if user.BufferMinutes <= 0 {
		buffer = DefaultBufferMinutes * time.Minute
	}

	event := &calendar.Event{
		Summary: fmt.Sprintf("Trip: %s", trip.Title),
		Start:   &calendar.EventDateTime{DateTime: trip.StartDate.Add(-buffer).Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: trip.EndDate.Add(buffer).Format(time.RFC3339)},
	}
	if itinerary != nil && itinerary.Confirmation != "" {
		event.Description = fmt.Sprintf("Confirmation: %s", itinerary.Confirmation)
	}

	created, err := svc.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}
	return created.Id, nil
}

// Ensure ArtifactsAdapter implements out.ArtifactWriter.
var _ out.ArtifactWriter = (*ArtifactsAdapter)(nil)
