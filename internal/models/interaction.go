// internal/models/interaction.go
package models

import "time"

// Message is a one-off contact message sent to a business, optionally by a
// guest who never logged in.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"senderId"`
	SenderName  string    `json:"senderName"`
	SenderEmail string    `json:"senderEmail"`
	SenderPhone string    `json:"senderPhone,omitempty"`
	BusinessID  string    `json:"businessId"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	SentAt      time.Time `json:"sentAt"`
	Read        bool      `json:"read"`
	Reply       string    `json:"reply,omitempty"`
}

type ChatMessage struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
}

// ChatThread holds the append-ordered conversation between one client and
// one business. There is at most one thread per (client, business) pair.
type ChatThread struct {
	ID           string        `json:"id"`
	BusinessID   string        `json:"businessId"`
	BusinessName string        `json:"businessName"`
	ClientID     string        `json:"clientId"`
	ClientName   string        `json:"clientName"`
	Messages     []ChatMessage `json:"messages"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type QuoteState string

const (
	QuotePending   QuoteState = "pending"
	QuoteResponded QuoteState = "responded"
	QuoteAccepted  QuoteState = "accepted"
	QuoteRejected  QuoteState = "rejected"
)

// Terminal reports whether no further transition may leave this state.
func (s QuoteState) Terminal() bool {
	return s == QuoteAccepted || s == QuoteRejected
}

type ItemKind string

const (
	ItemProduct ItemKind = "product"
	ItemService ItemKind = "service"
)

type QuoteRequest struct {
	ID           string     `json:"id"`
	ClientID     string     `json:"clientId"`
	ClientName   string     `json:"clientName"`
	ClientEmail  string     `json:"clientEmail,omitempty"`
	ClientPhone  string     `json:"clientPhone,omitempty"`
	BusinessID   string     `json:"businessId"`
	BusinessName string     `json:"businessName"`
	ItemKind     ItemKind   `json:"itemKind"`
	ItemID       string     `json:"itemId"`
	ItemName     string     `json:"itemName"`
	Quantity     int        `json:"quantity"`
	Description  string     `json:"description"`
	State        QuoteState `json:"state"`
	QuotedPrice  int64      `json:"quotedPrice,omitempty"`
	ResponseText string     `json:"responseText,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	RespondedAt  time.Time  `json:"respondedAt,omitzero"`
}

type NotificationKind string

const (
	NotifyMessage NotificationKind = "message"
	NotifyChat    NotificationKind = "chat"
	NotifyQuote   NotificationKind = "quote"
	NotifyReview  NotificationKind = "review"
	NotifySystem  NotificationKind = "system"
)

type Notification struct {
	ID         string           `json:"id"`
	ForActorID string           `json:"forActorId"`
	Kind       NotificationKind `json:"kind"`
	Title      string           `json:"title"`
	Body       string           `json:"body"`
	CreatedAt  time.Time        `json:"createdAt"`
	Read       bool             `json:"read"`
}

type Review struct {
	ID            string    `json:"id"`
	BusinessID    string    `json:"businessId"`
	AuthorID      string    `json:"authorId"`
	AuthorName    string    `json:"authorName"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"createdAt"`
	BusinessReply string    `json:"businessReply,omitempty"`
	RepliedAt     time.Time `json:"repliedAt,omitzero"`
}
