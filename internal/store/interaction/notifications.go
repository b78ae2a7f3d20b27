// internal/store/interaction/notifications.go
package interaction

import "uniautomarket/internal/models"

// NotificationsFor lists the notifications addressed to an actor, in
// creation order.
func (s *Store) NotificationsFor(actorID string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for _, n := range s.notifications {
		if n.ForActorID == actorID {
			out = append(out, n)
		}
	}
	return out
}

// MarkNotificationRead flags one notification; missing ids are a no-op.
func (s *Store) MarkNotificationRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return
		}
	}
}

// MarkAllNotificationsRead flags everything addressed to the actor.
func (s *Store) MarkAllNotificationsRead(actorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ForActorID == actorID {
			s.notifications[i].Read = true
		}
	}
}

// DismissNotification removes one notification entirely. Notifications
// are the only interaction records that may be deleted.
func (s *Store) DismissNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// UnreadNotificationCount feeds the bell badge.
func (s *Store) UnreadNotificationCount(actorID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notifications {
		if n.ForActorID == actorID && !n.Read {
			count++
		}
	}
	return count
}
