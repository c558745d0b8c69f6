package gmail

import (
	"testing"

	gmailapi "google.golang.org/api/gmail/v1"
)

func TestMapMessage(t *testing.T) {
	msg := &gmailapi.Message{
		Id:           "m-1",
		ThreadId:     "t-1",
		Snippet:      "Your flight is booked",
		InternalDate: 1767273600000,
		Payload: &gmailapi.MessagePart{
			PartId:   "",
			MimeType: "multipart/mixed",
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "From", Value: "no-reply@delta.com"},
				{Name: "Subject", Value: "Flight Confirmation"},
			},
			Body: &gmailapi.MessagePartBody{Size: 0},
			Parts: []*gmailapi.MessagePart{
				{
					PartId:   "0",
					MimeType: "text/plain",
					Body:     &gmailapi.MessagePartBody{Data: "aGVsbG8=", Size: 5},
				},
				{
					PartId:   "1",
					MimeType: "application/octet-stream",
					Filename: "invite.ics",
					Body:     &gmailapi.MessagePartBody{AttachmentId: "att-1", Size: 2048},
				},
			},
		},
	}

	rm := mapMessage(msg)

	if rm.ID != "m-1" || rm.ThreadID != "t-1" {
		t.Errorf("ids = (%s, %s)", rm.ID, rm.ThreadID)
	}
	if rm.InternalDate != 1767273600000 {
		t.Errorf("InternalDate = %d", rm.InternalDate)
	}
	if rm.Header("From") != "no-reply@delta.com" {
		t.Errorf("From header = %q", rm.Header("From"))
	}
	if rm.Header("Subject") != "Flight Confirmation" {
		t.Errorf("Subject header = %q", rm.Header("Subject"))
	}

	if rm.Payload == nil || len(rm.Payload.Parts) != 2 {
		t.Fatalf("payload = %+v, want 2 child parts", rm.Payload)
	}
	text := rm.Payload.Parts[0]
	if text.MimeType != "text/plain" || text.Body == nil || text.Body.Data != "aGVsbG8=" {
		t.Errorf("text part = %+v", text)
	}
	att := rm.Payload.Parts[1]
	if att.Filename != "invite.ics" || att.Body == nil || att.Body.AttachmentID != "att-1" {
		t.Errorf("attachment part = %+v", att)
	}
	if att.Body.Size != 2048 {
		t.Errorf("attachment size = %d, want 2048", att.Body.Size)
	}
}

func TestMapMessageWithoutPayload(t *testing.T) {
	rm := mapMessage(&gmailapi.Message{Id: "m-2"})
	if rm.Payload != nil {
		t.Errorf("Payload = %+v, want nil", rm.Payload)
	}
	if rm.Headers != nil {
		t.Errorf("Headers = %+v, want nil", rm.Headers)
	}
}

func TestMapPartNil(t *testing.T) {
	if got := mapPart(nil); got != nil {
		t.Errorf("mapPart(nil) = %+v, want nil", got)
	}
}
