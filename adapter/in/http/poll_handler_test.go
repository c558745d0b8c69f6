package http

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"tripscan/core/port/in"
	"tripscan/infra/middleware"
	"tripscan/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

type stubPollService struct {
	pollAllCount  int
	pollUserCalls []string
	result        *in.PollResult
	err           error
}

func (s *stubPollService) PollUser(_ context.Context, userID string) (*in.PollResult, error) {
	s.pollUserCalls = append(s.pollUserCalls, userID)
	return s.result, s.err
}

func (s *stubPollService) PollAll(context.Context) (int, error) {
	s.pollAllCount++
	return 7, s.err
}

func pollApp(svc in.PollService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	NewPollHandler(svc, "s3cret").Register(app)
	return app
}

func TestPollAllEndpoint(t *testing.T) {
	svc := &stubPollService{}
	app := pollApp(svc)

	req := httptest.NewRequest("POST", "/internal/cron/poll", nil)
	req.Header.Set("X-Cron-Secret", "s3cret")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if svc.pollAllCount != 1 {
		t.Errorf("PollAll invoked %d times, want 1", svc.pollAllCount)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"processed":7`) {
		t.Errorf("body = %s, want processed count", body)
	}
}

func TestPollUserEndpoint(t *testing.T) {
	svc := &stubPollService{result: &in.PollResult{UserID: "user-1", Processed: 2}}
	app := pollApp(svc)

	req := httptest.NewRequest("POST", "/internal/users/user-1/poll", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(svc.pollUserCalls) != 1 || svc.pollUserCalls[0] != "user-1" {
		t.Errorf("PollUser calls = %v, want [user-1]", svc.pollUserCalls)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"processed":2`) {
		t.Errorf("body = %s, want the poll result", body)
	}
}

func TestPollEndpointsRequireSecret(t *testing.T) {
	svc := &stubPollService{}
	app := pollApp(svc)

	for _, path := range []string{"/internal/cron/poll", "/internal/users/user-1/poll"} {
		req := httptest.NewRequest("POST", path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, resp.StatusCode)
		}
	}
	if svc.pollAllCount != 0 || len(svc.pollUserCalls) != 0 {
		t.Error("service invoked without the cron secret")
	}
}

func TestPollUserEndpointServiceError(t *testing.T) {
	svc := &stubPollService{err: apperr.NotFound("mail connection")}
	app := pollApp(svc)

	req := httptest.NewRequest("POST", "/internal/users/user-1/poll", nil)
	req.Header.Set("X-Cron-Secret", "s3cret")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestPollAllEndpointUnexpectedError(t *testing.T) {
	svc := &stubPollService{err: errors.New("boom")}
	app := pollApp(svc)

	req := httptest.NewRequest("POST", "/internal/cron/poll", nil)
	req.Header.Set("X-Cron-Secret", "s3cret")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}
