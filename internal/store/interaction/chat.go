// internal/store/interaction/chat.go
package interaction

import (
	"strings"

	"uniautomarket/internal/common/metrics"
	"uniautomarket/internal/models"

	apperrors "uniautomarket/internal/common/errors"
)

// GetOrCreateThread is idempotent on the (client, business) pair: an
// existing thread is returned untouched, otherwise a new empty one is
// created.
func (s *Store) GetOrCreateThread(clientID, clientName, businessID, businessName string) (string, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(businessID) == "" {
		return "", apperrors.NewInvalidInputError("clientId and businessId are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.threads {
		if t.ClientID == clientID && t.BusinessID == businessID {
			return t.ID, nil
		}
	}

	thread := models.ChatThread{
		ID:           s.newID(),
		BusinessID:   businessID,
		BusinessName: businessName,
		ClientID:     clientID,
		ClientName:   clientName,
		UpdatedAt:    s.now().UTC(),
	}
	s.threads = append(s.threads, thread)
	metrics.InteractionEvents.WithLabelValues("thread_created").Inc()
	return thread.ID, nil
}

// PostMessage appends to a thread with the current actor's identity.
// Messages are append-ordered; no reordering or editing.
func (s *Store) PostMessage(threadID, text string) (models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, apperrors.NewInvalidInputError("message text is required")
	}
	authorID, authorName := s.currentActorOrGuest("")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.threads {
		if s.threads[i].ID != threadID {
			continue
		}

		msg := models.ChatMessage{
			ID:         s.newID(),
			AuthorID:   authorID,
			AuthorName: authorName,
			Text:       text,
			Timestamp:  s.now().UTC(),
		}
		s.threads[i].Messages = append(s.threads[i].Messages, msg)
		s.threads[i].UpdatedAt = msg.Timestamp
		metrics.InteractionEvents.WithLabelValues("chat_message").Inc()

		s.notifyCounterpart(s.threads[i], authorID, authorName)
		return msg, nil
	}
	return models.ChatMessage{}, apperrors.NewNotFoundError("thread", threadID)
}

// notifyCounterpart pings whichever side of the thread did not write.
func (s *Store) notifyCounterpart(t models.ChatThread, authorID, authorName string) {
	if authorID == t.ClientID {
		if owner, ok := s.session.ActorForBusiness(t.BusinessID); ok {
			s.pushNotification(owner.ID, models.NotifyChat,
				"Nuevo mensaje de chat", authorName+" te ha escrito")
		}
		return
	}
	s.pushNotification(t.ClientID, models.NotifyChat,
		"Nuevo mensaje de chat", t.BusinessName+" te ha respondido")
}

// MarkThreadRead marks every message not authored by readerID as read.
func (s *Store) MarkThreadRead(threadID, readerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.threads {
		if s.threads[i].ID != threadID {
			continue
		}
		for j := range s.threads[i].Messages {
			if s.threads[i].Messages[j].AuthorID != readerID {
				s.threads[i].Messages[j].Read = true
			}
		}
		return
	}
}

// ThreadByID returns a detached copy of one thread.
func (s *Store) ThreadByID(threadID string) (models.ChatThread, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.threads {
		if t.ID == threadID {
			return cloneThread(t), true
		}
	}
	return models.ChatThread{}, false
}

// ThreadsForActor lists the threads an actor participates in, as client
// or as owner of the business side.
func (s *Store) ThreadsForActor(actorID string) []models.ChatThread {
	businessID := ""
	if actor, ok := s.session.ActorByID(actorID); ok {
		businessID = actor.BusinessID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ChatThread
	for _, t := range s.threads {
		if t.ClientID == actorID || (businessID != "" && t.BusinessID == businessID) {
			out = append(out, cloneThread(t))
		}
	}
	return out
}

// UnreadChatCount counts messages addressed to the actor across all of
// their threads.
func (s *Store) UnreadChatCount(actorID string) int {
	count := 0
	for _, t := range s.ThreadsForActor(actorID) {
		for _, m := range t.Messages {
			if !m.Read && m.AuthorID != actorID {
				count++
			}
		}
	}
	return count
}

func cloneThread(t models.ChatThread) models.ChatThread {
	out := t
	out.Messages = append([]models.ChatMessage(nil), t.Messages...)
	return out
}
