package core

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"net/mail"
)

type (
	// Attachment content is held base64-encoded, ready for the wire.
	Attachment struct {
		Content     *bytes.Buffer
		ContentType string
		Filename    string
	}

	EmailMessage struct {
		To          []mail.Address
		Cc          []mail.Address
		Bcc         []mail.Address
		Subject     string
		TextContent string
		Attachments []Attachment
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

func (m *EmailMessage) Attach(content []byte, filename string, ct ...string) error {
	at := Attachment{Content: new(bytes.Buffer), Filename: filename}

	encoder := base64.NewEncoder(base64.StdEncoding, at.Content)
	if _, err := encoder.Write(content); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	if len(ct) > 0 {
		at.ContentType = ct[0]
	} else {
		at.ContentType = http.DetectContentType(content)
	}
	m.Attachments = append(m.Attachments, at)
	return nil
}

func (m *EmailMessage) HasRecipients() bool  { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool     { return m.TextContent != "" }
func (m *EmailMessage) HasAttachments() bool { return len(m.Attachments) > 0 }
