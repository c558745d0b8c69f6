package poll

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"tripscan/core/domain"
	"tripscan/core/port/in"
	"tripscan/core/port/out"
	"tripscan/core/service/extract"
	"tripscan/core/service/reconcile"
	"tripscan/pkg/apperr"
	"tripscan/pkg/logger"

	"github.com/google/uuid"
)

// DefaultSearchQuery is the provider search expression for plausible
// travel-confirmation mail, carried over from the original deployment.
const DefaultSearchQuery = `newer_than:14d (from:("Capital One Travel" OR capitalone.com OR amadeus.com OR expedia.com OR united.com OR delta.com OR aa.com OR southwest.com) subject:(itinerary OR flight OR booking OR "trip confirmation"))`

// Config bounds one poll run.
type Config struct {
	SearchQuery        string
	MaxMessagesPerUser int64
	// UserConcurrency bounds the PollAll fan-out. Users own disjoint trip
	// rows, so cross-user parallelism is safe; within a user, messages stay
	// strictly ordered.
	UserConcurrency int
}

func (c Config) query() string {
	if c.SearchQuery != "" {
		return c.SearchQuery
	}
	return DefaultSearchQuery
}

func (c Config) maxMessages() int64 {
	if c.MaxMessagesPerUser > 0 {
		return c.MaxMessagesPerUser
	}
	return 20
}

func (c Config) userConcurrency() int {
	if c.UserConcurrency > 0 {
		return c.UserConcurrency
	}
	return 4
}

// Service implements in.PollService.
type Service struct {
	cfg        Config
	users      out.UserRepository
	oauth      out.OAuthRepository
	provider   out.MailProvider
	seenRepo   out.SeenMessageRepository
	seenCache  out.SeenMessageCache // optional
	normalizer *extract.Normalizer
	matcher    *reconcile.Matcher
	archive    out.MessageArchive // optional
	artifacts  out.ArtifactWriter // optional
	activity   out.ActivityLogger
}

// NewService wires the poll orchestrator. seenCache, archive and artifacts
// may be nil; they are advisory/best-effort collaborators.
func NewService(
	cfg Config,
	users out.UserRepository,
	oauth out.OAuthRepository,
	provider out.MailProvider,
	seenRepo out.SeenMessageRepository,
	seenCache out.SeenMessageCache,
	normalizer *extract.Normalizer,
	matcher *reconcile.Matcher,
	archive out.MessageArchive,
	artifacts out.ArtifactWriter,
	activity out.ActivityLogger,
) *Service {
	return &Service{
		cfg:        cfg,
		users:      users,
		oauth:      oauth,
		provider:   provider,
		seenRepo:   seenRepo,
		seenCache:  seenCache,
		normalizer: normalizer,
		matcher:    matcher,
		archive:    archive,
		artifacts:  artifacts,
		activity:   activity,
	}
}

// PollUser processes one user's candidate batch, strictly in provider order.
func (s *Service) PollUser(ctx context.Context, userID string) (*in.PollResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("load user", err)
	}
	if user == nil || !user.GmailConnected {
		return nil, apperr.NotFound("mail connection")
	}

	conn, err := s.oauth.GetConnection(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("load mail connection", err)
	}
	if conn == nil {
		return nil, apperr.NotFound("mail connection")
	}

	candidates, err := s.provider.ListCandidateMessageIDs(ctx, conn, out.MailListQuery{
		Query:      s.cfg.query(),
		MaxResults: s.cfg.maxMessages(),
	})
	if err != nil {
		return nil, apperr.ExternalError("gmail", err)
	}

	// Blank ids surface in list responses now and then; nothing is fetchable
	// behind them and they must not be counted as duplicates.
	ids := candidates[:0]
	for _, id := range candidates {
		if id != "" {
			ids = append(ids, id)
		}
	}
	candidates = ids

	result := &in.PollResult{UserID: userID}
	if len(candidates) == 0 {
		return result, nil
	}

	seen, err := s.seenSet(ctx, userID, candidates)
	if err != nil {
		return nil, apperr.DatabaseError("load seen messages", err)
	}

	fresh := Dedupe(seen, candidates)
	freshSet := make(map[string]struct{}, len(fresh))
	for _, id := range fresh {
		freshSet[id] = struct{}{}
	}
	for _, id := range candidates {
		if _, ok := freshSet[id]; !ok {
			result.Outcomes = append(result.Outcomes, in.MessageOutcome{
				MessageID: id,
				Status:    in.OutcomeSkippedDuplicate,
			})
		}
	}

	for _, id := range fresh {
		outcome := s.processMessage(ctx, user, conn, id)
		result.Outcomes = append(result.Outcomes, outcome)
		switch outcome.Status {
		case in.OutcomeMergedIntoTrip, in.OutcomeCreatedTrip:
			result.Processed++
		case in.OutcomeError:
			s.activity.Log(ctx, &domain.ActivityEntry{
				UserID:  userID,
				Level:   domain.ActivityLevelError,
				Action:  domain.ActionGmailPollFail,
				Message: outcome.Reason,
				Meta:    map[string]any{"message_id": id},
			})
		}
	}

	return result, nil
}

// seenSet merges the advisory cache with the authoritative store. Cache
// errors are swallowed; the SQL seen-set always gets the final word on the
// ids the cache missed.
func (s *Service) seenSet(ctx context.Context, userID string, candidates []string) (map[string]struct{}, error) {
	seen := make(map[string]struct{})
	if s.seenCache != nil {
		if cached, err := s.seenCache.FilterSeen(ctx, userID, candidates); err == nil {
			for id := range cached {
				seen[id] = struct{}{}
			}
		}
	}

	remaining := make([]string, 0, len(candidates))
	for _, id := range candidates {
		if _, ok := seen[id]; !ok {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) == 0 {
		return seen, nil
	}

	stored, err := s.seenRepo.FindSeenIDs(ctx, userID, remaining)
	if err != nil {
		return nil, err
	}
	for id := range stored {
		seen[id] = struct{}{}
	}
	return seen, nil
}

func (s *Service) processMessage(ctx context.Context, user *domain.User, conn *out.OAuthConnection, messageID string) in.MessageOutcome {
	msg, err := s.provider.GetFullMessage(ctx, conn, messageID)
	if err != nil {
		return errOutcome(messageID, fmt.Errorf("fetch message: %w", err))
	}

	fetch := func(ctx context.Context, attachmentID string) ([]byte, error) {
		return s.provider.GetAttachment(ctx, conn, messageID, attachmentID)
	}

	parsed, err := s.normalizer.Normalize(ctx, msg, fetch)
	if err != nil {
		return errOutcome(messageID, fmt.Errorf("normalize: %w", err))
	}
	if parsed == nil {
		return in.MessageOutcome{MessageID: messageID, Status: in.OutcomeSkippedUnparseable}
	}

	res, err := s.matcher.Reconcile(ctx, user.ID, parsed)
	if err != nil {
		return errOutcome(messageID, fmt.Errorf("reconcile trip: %w", err))
	}

	rec := &domain.SeenMessageRecord{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		MessageID:    msg.ID,
		ThreadID:     msg.ThreadID,
		InternalDate: msg.InternalDate,
		Vendor:       parsed.Vendor,
		ParsedHash:   parsed.Hash,
		TripID:       res.Trip.ID,
	}
	if err := s.seenRepo.Create(ctx, rec); err != nil {
		return errOutcome(messageID, fmt.Errorf("record seen message: %w", err))
	}
	if s.seenCache != nil {
		if err := s.seenCache.MarkSeen(ctx, user.ID, messageID); err != nil {
			logger.WithField("user_id", user.ID).Debug("seen cache mark failed: %v", err)
		}
	}

	s.sideEffects(ctx, user, msg, parsed, res)

	status := in.OutcomeMergedIntoTrip
	if res.Created {
		status = in.OutcomeCreatedTrip
	}
	return in.MessageOutcome{MessageID: messageID, Status: status, TripID: res.Trip.ID}
}

// sideEffects runs the best-effort post-reconciliation work. Nothing here
// may change the message outcome.
func (s *Service) sideEffects(ctx context.Context, user *domain.User, msg *domain.RawMessage, parsed *domain.ParsedItinerary, res *reconcile.Result) {
	if s.archive != nil {
		body := extract.ExtractBody(msg)
		if err := s.archive.Save(ctx, user.ID, msg.ID, body, msg.ReceivedAt()); err != nil {
			logger.WithField("user_id", user.ID).Warn("raw body archive failed: %v", err)
		}
	}

	if s.artifacts != nil {
		if err := s.artifacts.SyncTrip(ctx, user.ID, res.Trip.ID, parsed); err != nil {
			logger.WithField("user_id", user.ID).Warn("artifact sync failed: %v", err)
		}
	}

	action := domain.ActionTripUpdated
	if res.Created {
		action = domain.ActionTripCreated
	}
	s.activity.Log(ctx, &domain.ActivityEntry{
		UserID:  user.ID,
		Level:   domain.ActivityLevelInfo,
		Action:  action,
		Message: fmt.Sprintf("Trip from %s", parsed.Vendor),
		TripID:  res.Trip.ID,
		Meta:    map[string]any{"confidence": parsed.Confidence, "hash": parsed.Hash},
	})

	if res.MatchedByOverlap {
		s.activity.Log(ctx, &domain.ActivityEntry{
			UserID:  user.ID,
			Level:   domain.ActivityLevelWarn,
			Action:  domain.ActionTripMergeOverlap,
			Message: "trip matched by date overlap only",
			TripID:  res.Trip.ID,
			Meta:    map[string]any{"vendor": parsed.Vendor},
		})
	}
}

// PollAll polls every connected user. Per-user failures are logged and the
// run continues; users fan out with bounded concurrency while each user's
// own batch stays ordered.
func (s *Service) PollAll(ctx context.Context) (int, error) {
	users, err := s.users.ListGmailConnected(ctx)
	if err != nil {
		return 0, apperr.DatabaseError("list connected users", err)
	}

	var processed atomic.Int64
	sem := make(chan struct{}, s.cfg.userConcurrency())
	var wg sync.WaitGroup

	for _, user := range users {
		wg.Add(1)
		go func(u *domain.User) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			started := time.Now()
			result, err := s.PollUser(ctx, u.ID)
			if err != nil {
				s.activity.Log(ctx, &domain.ActivityEntry{
					UserID:  u.ID,
					Level:   domain.ActivityLevelError,
					Action:  domain.ActionGmailPollFail,
					Message: err.Error(),
				})
				return
			}
			processed.Add(int64(result.Processed))
			if result.Processed > 0 {
				logger.WithField("user_id", u.ID).Info("poll processed %d messages in %s", result.Processed, time.Since(started).Round(time.Millisecond))
			}
		}(user)
	}
	wg.Wait()

	return int(processed.Load()), nil
}

func errOutcome(messageID string, err error) in.MessageOutcome {
	return in.MessageOutcome{
		MessageID: messageID,
		Status:    in.OutcomeError,
		Reason:    err.Error(),
	}
}
