package gmail

import (
	"encoding/base64"
	"mime"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// BuildRawMessage encodes an outgoing message for the Gmail send endpoint:
// RFC 2822 headers, a blank line, then the body, base64url-encoded. Only the
// headers whose fields are set are written.
func BuildRawMessage(msg *OutgoingMessage) string {
	var b strings.Builder

	if msg.From != "" {
		b.WriteString("From: ")
		b.WriteString(msg.From)
		b.WriteString("\r\n")
	}

	b.WriteString("To: ")
	b.WriteString(strings.Join(msg.To, ", "))
	b.WriteString("\r\n")

	if len(msg.Cc) > 0 {
		b.WriteString("Cc: ")
		b.WriteString(strings.Join(msg.Cc, ", "))
		b.WriteString("\r\n")
	}

	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(msg.Subject))
	b.WriteString("\r\n\r\n")
	b.WriteString(msg.Body)

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}

// encodeRFC2047 encodes a header value when it contains non-ASCII characters
// (umlauts and the like); plain ASCII passes through untouched.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}

// HeaderValue extracts a header value from a message. It is null-safe: a
// missing payload or header yields the empty string.
func HeaderValue(m *gmail.Message, header string) string {
	if m == nil || m.Payload == nil {
		return ""
	}
	for _, h := range m.Payload.Headers {
		if strings.EqualFold(h.Name, header) {
			return h.Value
		}
	}
	return ""
}

// ExtractText pulls the plain-text body out of a message. A flat body is
// preferred; otherwise the multipart sections are scanned in order for the
// first text/plain part. Messages with no textual content anywhere (HTML-only
// bodies included) yield the empty string — this is a best-effort, lossy
// extraction, not a full MIME parse.
func ExtractText(m *gmail.Message) string {
	if m == nil || m.Payload == nil {
		return ""
	}

	if m.Payload.Body != nil && m.Payload.Body.Data != "" {
		return decodeBody(m.Payload.Body.Data)
	}

	for _, part := range m.Payload.Parts {
		if part == nil || part.Body == nil {
			continue
		}
		if part.MimeType == "text/plain" && part.Body.Data != "" {
			return decodeBody(part.Body.Data)
		}
	}

	return ""
}

// decodeBody decodes the base64url body data Gmail returns. Payloads arrive
// both padded and unpadded in practice.
func decodeBody(data string) string {
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	return ""
}
