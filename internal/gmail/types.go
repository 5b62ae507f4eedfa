package gmail

// MessageSummary is the projection of a message used in listings.
type MessageSummary struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Date     string `json:"date,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
}

// Message is the full projection returned by a single-message fetch. Body is
// the best-effort extracted plain text; see ExtractText for its limits.
type Message struct {
	MessageSummary

	Cc     string   `json:"cc,omitempty"`
	Labels []string `json:"labels,omitempty"`
	Body   string   `json:"body"`
}

// OutgoingMessage is an email to be sent. From is optional: when empty the
// header is omitted entirely and Gmail fills in the authenticated sender.
type OutgoingMessage struct {
	From    string
	To      []string
	Cc      []string
	Subject string
	Body    string
}
