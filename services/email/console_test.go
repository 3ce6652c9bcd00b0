package emailsvc

import (
	"net/mail"
	"testing"

	"github.com/kampushq/kampus/core"
)

func TestConsoleServiceMock_recordsSynchronously(t *testing.T) {
	conf := &core.Config{AppName: "kampus", DefaultFromEmail: "noreply@kampus.test"}
	svc := NewConsoleServiceMock(conf)
	ResetSentMessages()

	msg := &core.EmailMessage{
		To:          []mail.Address{{Address: "rector@kampus.test"}},
		Subject:     "boletines",
		TextContent: "adjunto",
	}
	svc.SendMessages(msg)

	// the record must be complete the moment SendMessages returns
	sent := SentMessages()
	if len(sent) != 1 {
		t.Fatalf("len(SentMessages()) = %d right after SendMessages returned; want 1", len(sent))
	}
	if sent[0].To[0].Address != "rector@kampus.test" {
		t.Errorf("To = %v; want rector@kampus.test", sent[0].To[0].Address)
	}

	// messages with nothing to send are not recorded
	svc.SendMessages(&core.EmailMessage{Subject: "no recipients"})
	if got := len(SentMessages()); got != 1 {
		t.Errorf("len(SentMessages()) = %d after an unsendable message; want 1", got)
	}

	ResetSentMessages()
	if got := len(SentMessages()); got != 0 {
		t.Errorf("len(SentMessages()) = %d after reset; want 0", got)
	}
}
