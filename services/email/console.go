package emailsvc

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/kampushq/kampus/core"
)

var (
	mu           sync.Mutex
	sentMessages = make([]core.EmailMessage, 0)
)

// SentMessages returns a snapshot of the messages recorded so far.
func SentMessages() []core.EmailMessage {
	mu.Lock()
	defer mu.Unlock()
	out := make([]core.EmailMessage, len(sentMessages))
	copy(out, sentMessages)
	return out
}

// ResetSentMessages clears the record between tests.
func ResetSentMessages() {
	mu.Lock()
	defer mu.Unlock()
	sentMessages = sentMessages[:0]
}

type consoleService struct {
	defaultFromEmail mail.Address
	subjPrefix       string
	disableOutput    bool
}

var _ core.EmailService = (*consoleService)(nil)

func NewConsoleService(conf *core.Config) core.EmailService {
	return &consoleService{
		defaultFromEmail: mail.Address{Name: conf.AppName, Address: conf.DefaultFromEmail},
		subjPrefix:       "[" + conf.AppName + "] ",
	}
}

// SendMessages records sendable messages synchronously, so SentMessages is
// complete as soon as this returns; only the console rendering runs async.
func (svc consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		if msg.HasRecipients() && (msg.HasContent() || msg.HasAttachments()) {
			mu.Lock()
			sentMessages = append(sentMessages, *msg)
			mu.Unlock()
			go svc.send(*msg)
		}
	}
}

func (svc consoleService) send(msg core.EmailMessage) {
	body := new(strings.Builder)

	// Write mail header
	_, _ = fmt.Fprintf(body, "From: %s\r\n", svc.defaultFromEmail.String())
	_, _ = fmt.Fprint(body, "MIME-Version: 1.0\r\n")
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+msg.Subject)
	_, _ = fmt.Fprintf(body, "To: %s\r\n", svc.joinAddresses(msg.To))
	_, _ = fmt.Fprintf(body, "CC: %s\r\n", svc.joinAddresses(msg.Cc))
	_, _ = fmt.Fprintf(body, "BCC: %s\r\n", svc.joinAddresses(msg.Bcc))

	mixedW := multipart.NewWriter(body)
	defer mixedW.Close()
	_, _ = fmt.Fprint(body, "Content-Type: multipart/mixed\r\n")
	_, _ = fmt.Fprintf(body, "Content-Type: boundary=%s\r\n", mixedW.Boundary())
	_, _ = fmt.Fprint(body, "\r\n")

	w, err := mixedW.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain"}})
	if err != nil {
		log.Fatalf("%+v", errors.Wrap(err, "creating text/plain part"))
	}
	_, _ = fmt.Fprintf(w, "%s\r\n", msg.TextContent)

	for _, at := range msg.Attachments {
		w, err = mixedW.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {at.ContentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {"attachment; filename=" + at.Filename}})
		if err != nil {
			log.Fatalf("%+v", errors.Wrap(err, "creating "+at.ContentType+" part"))
		}
		_, _ = fmt.Fprintf(w, "%s\r\n", at.Content.String())
	}

	if !svc.disableOutput {
		log.Println(body.String())
	}
}

func (svc consoleService) joinAddresses(addrs []mail.Address) string {
	toJoin := make([]string, 0, len(addrs))
	for _, a := range addrs {
		toJoin = append(toJoin, a.String())
	}
	return strings.Join(toJoin, ", ")
}

type consoleServiceMock struct {
	consoleService
}

func NewConsoleServiceMock(conf *core.Config) core.EmailService {
	return &consoleServiceMock{
		consoleService: consoleService{
			defaultFromEmail: mail.Address{Name: conf.AppName, Address: conf.DefaultFromEmail},
			subjPrefix:       "[" + conf.AppName + "] ",
			disableOutput:    true,
		},
	}
}
