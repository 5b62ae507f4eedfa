package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmail "google.golang.org/api/gmail/v1"
)

func decodeRaw(t *testing.T, raw string) string {
	t.Helper()
	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	return string(decoded)
}

func TestBuildRawMessageWithoutFrom(t *testing.T) {
	raw := BuildRawMessage(&OutgoingMessage{
		To:      []string{"a@b.com"},
		Subject: "S",
		Body:    "B",
	})

	lines := strings.Split(decodeRaw(t, raw), "\r\n")
	assert.Equal(t, []string{"To: a@b.com", "Subject: S", "", "B"}, lines)
}

func TestBuildRawMessageWithFromAndCc(t *testing.T) {
	raw := BuildRawMessage(&OutgoingMessage{
		From:    "me@example.com",
		To:      []string{"a@b.com", "c@d.com"},
		Cc:      []string{"cc@example.com"},
		Subject: "Weekly report",
		Body:    "See attached.",
	})

	decoded := decodeRaw(t, raw)
	assert.Contains(t, decoded, "From: me@example.com\r\n")
	assert.Contains(t, decoded, "To: a@b.com, c@d.com\r\n")
	assert.Contains(t, decoded, "Cc: cc@example.com\r\n")
	assert.Contains(t, decoded, "Subject: Weekly report\r\n\r\nSee attached.")
}

func TestBuildRawMessageEncodesNonASCIISubject(t *testing.T) {
	raw := BuildRawMessage(&OutgoingMessage{
		To:      []string{"a@b.com"},
		Subject: "Grüße",
		Body:    "B",
	})

	decoded := decodeRaw(t, raw)
	assert.Contains(t, decoded, "Subject: =?UTF-8?b?")
	assert.NotContains(t, decoded, "Subject: Grüße")
}

func TestHeaderValue(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			Headers: []*gmail.MessagePartHeader{
				{Name: "Subject", Value: "hello"},
				{Name: "From", Value: "x@y.com"},
			},
		},
	}

	assert.Equal(t, "hello", HeaderValue(msg, "Subject"))
	assert.Equal(t, "hello", HeaderValue(msg, "subject"))
	assert.Empty(t, HeaderValue(msg, "Date"))
	assert.Empty(t, HeaderValue(nil, "Subject"))
	assert.Empty(t, HeaderValue(&gmail.Message{}, "Subject"))
}

func encodeBody(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestExtractTextFlatBody(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Body:     &gmail.MessagePartBody{Data: encodeBody("plain body")},
		},
	}

	assert.Equal(t, "plain body", ExtractText(msg))
}

func TestExtractTextFirstPlainPart(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Parts: []*gmail.MessagePart{
				{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: encodeBody("<p>html</p>")}},
				{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: encodeBody("first plain")}},
				{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: encodeBody("second plain")}},
			},
		},
	}

	assert.Equal(t, "first plain", ExtractText(msg))
}

func TestExtractTextHTMLOnlyYieldsEmpty(t *testing.T) {
	// Known limitation: HTML-only bodies are never extracted.
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Parts: []*gmail.MessagePart{
				{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: encodeBody("<p>only html</p>")}},
			},
		},
	}

	assert.Empty(t, ExtractText(msg))
}

func TestExtractTextNullSafety(t *testing.T) {
	assert.Empty(t, ExtractText(nil))
	assert.Empty(t, ExtractText(&gmail.Message{}))
	assert.Empty(t, ExtractText(&gmail.Message{Payload: &gmail.MessagePart{}}))
	assert.Empty(t, ExtractText(&gmail.Message{
		Payload: &gmail.MessagePart{Parts: []*gmail.MessagePart{nil, {MimeType: "text/plain"}}},
	}))
}

func TestExtractTextUnpaddedBase64(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			Body: &gmail.MessagePartBody{
				Data: base64.RawURLEncoding.EncodeToString([]byte("unpadded")),
			},
		},
	}

	assert.Equal(t, "unpadded", ExtractText(msg))
}
