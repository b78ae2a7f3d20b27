// internal/store/interaction/messages.go
package interaction

import (
	"strings"

	"uniautomarket/internal/common/metrics"
	"uniautomarket/internal/models"

	apperrors "uniautomarket/internal/common/errors"
)

// MessageSpec is the payload for a one-off contact message. Sender
// fields are optional: guests get a generated identity.
type MessageSpec struct {
	SenderName  string
	SenderEmail string
	SenderPhone string
	BusinessID  string
	Subject     string
	Body        string
}

// SendMessage is allowed for any actor, including guests who never
// logged in. The owning business actor, when one exists, is notified.
func (s *Store) SendMessage(spec MessageSpec) (models.Message, error) {
	if strings.TrimSpace(spec.BusinessID) == "" {
		return models.Message{}, apperrors.NewInvalidInputError("businessId is required")
	}
	if strings.TrimSpace(spec.Body) == "" {
		return models.Message{}, apperrors.NewInvalidInputError("message body is required")
	}

	senderID, senderName := s.currentActorOrGuest(spec.SenderName)

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := models.Message{
		ID:          s.newID(),
		SenderID:    senderID,
		SenderName:  senderName,
		SenderEmail: spec.SenderEmail,
		SenderPhone: spec.SenderPhone,
		BusinessID:  spec.BusinessID,
		Subject:     spec.Subject,
		Body:        spec.Body,
		SentAt:      s.now().UTC(),
	}
	s.messages = append(s.messages, msg)
	metrics.InteractionEvents.WithLabelValues("message_sent").Inc()

	if owner, ok := s.session.ActorForBusiness(spec.BusinessID); ok {
		s.pushNotification(owner.ID, models.NotifyMessage,
			"Nuevo mensaje", "Has recibido un mensaje de "+senderName)
	}
	return msg, nil
}

// MarkMessageRead flags a received message; missing ids are a no-op.
func (s *Store) MarkMessageRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Read = true
			return
		}
	}
}

// ReplyMessage attaches the business reply and notifies the sender.
func (s *Store) ReplyMessage(id, text string) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, apperrors.NewInvalidInputError("reply text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID != id {
			continue
		}
		if !s.session.CanEditBusiness(s.messages[i].BusinessID) {
			return models.Message{}, apperrors.NewForbiddenError("reply message")
		}
		s.messages[i].Reply = text
		s.messages[i].Read = true
		metrics.InteractionEvents.WithLabelValues("message_replied").Inc()

		s.pushNotification(s.messages[i].SenderID, models.NotifyMessage,
			"Respuesta a tu mensaje", "Tu mensaje ha sido respondido")
		return s.messages[i], nil
	}
	return models.Message{}, apperrors.NewNotFoundError("message", id)
}

// MessagesForBusiness lists every message addressed to a business,
// newest last.
func (s *Store) MessagesForBusiness(businessID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Message
	for _, m := range s.messages {
		if m.BusinessID == businessID {
			out = append(out, m)
		}
	}
	return out
}

// MessagesReceivedBy lists messages for an actor or for the business the
// id resolves to, matching either addressing style.
func (s *Store) MessagesReceivedBy(actorOrBusinessID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Message
	for _, m := range s.messages {
		if m.BusinessID == actorOrBusinessID || m.SenderID == actorOrBusinessID {
			out = append(out, m)
		}
	}
	return out
}
