package gmail

import (
	"context"
	"fmt"
	"log/slog"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/workweave/workspace-mcp/internal/auth"
)

const maxPageSize = 100

// Client wraps the Gmail Users service.
type Client struct {
	svc    *gmail.UsersService
	logger *slog.Logger
}

// NewClient creates a Gmail client authenticated through the given
// credential provider.
func NewClient(ctx context.Context, provider auth.Provider, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(auth.TokenSource(ctx, provider)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{svc: svc.Users, logger: logger}, nil
}

// ListMessages lists messages matching the Gmail query syntax, newest first,
// and fetches the common headers for each. A non-positive maxResults falls
// back to 10.
func (c *Client) ListMessages(ctx context.Context, query string, maxResults int64) ([]*MessageSummary, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	if maxResults > maxPageSize {
		maxResults = maxPageSize
	}

	call := c.svc.Messages.List("me").MaxResults(maxResults).Context(ctx)
	if query != "" {
		call = call.Q(query)
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	summaries := make([]*MessageSummary, 0, len(res.Messages))
	for _, m := range res.Messages {
		detail, err := c.svc.Messages.Get("me", m.Id).
			Format("metadata").
			MetadataHeaders("Subject", "From", "To", "Date").
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get message %s: %w", m.Id, err)
		}

		summaries = append(summaries, &MessageSummary{
			ID:       detail.Id,
			ThreadID: detail.ThreadId,
			From:     HeaderValue(detail, "From"),
			To:       HeaderValue(detail, "To"),
			Subject:  HeaderValue(detail, "Subject"),
			Date:     HeaderValue(detail, "Date"),
			Snippet:  detail.Snippet,
		})
	}

	return summaries, nil
}

// GetMessage retrieves a single message in full, including the extracted
// plain-text body.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*Message, error) {
	if messageID == "" {
		return nil, fmt.Errorf("messageID is required")
	}

	detail, err := c.svc.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}

	return &Message{
		MessageSummary: MessageSummary{
			ID:       detail.Id,
			ThreadID: detail.ThreadId,
			From:     HeaderValue(detail, "From"),
			To:       HeaderValue(detail, "To"),
			Subject:  HeaderValue(detail, "Subject"),
			Date:     HeaderValue(detail, "Date"),
			Snippet:  detail.Snippet,
		},
		Cc:     HeaderValue(detail, "Cc"),
		Labels: detail.LabelIds,
		Body:   ExtractText(detail),
	}, nil
}

// SendMessage sends an email and returns the id assigned to it.
func (c *Client) SendMessage(ctx context.Context, msg *OutgoingMessage) (string, error) {
	if len(msg.To) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}
	if msg.Subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	if msg.Body == "" {
		return "", fmt.Errorf("body is required")
	}

	sent, err := c.svc.Messages.Send("me", &gmail.Message{
		Raw: BuildRawMessage(msg),
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	return sent.Id, nil
}

// MarkRead removes the UNREAD label from a message.
func (c *Client) MarkRead(ctx context.Context, messageID string) error {
	return c.modifyLabels(ctx, messageID, nil, []string{"UNREAD"})
}

// MarkUnread adds the UNREAD label to a message.
func (c *Client) MarkUnread(ctx context.Context, messageID string) error {
	return c.modifyLabels(ctx, messageID, []string{"UNREAD"}, nil)
}

func (c *Client) modifyLabels(ctx context.Context, messageID string, add, remove []string) error {
	if messageID == "" {
		return fmt.Errorf("messageID is required")
	}

	_, err := c.svc.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		AddLabelIds:    add,
		RemoveLabelIds: remove,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to modify labels on message %s: %w", messageID, err)
	}

	return nil
}
