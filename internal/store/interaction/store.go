// Package interaction owns the session-local collections layered on top
// of the catalog entities: contact messages, chat threads, quote
// requests, notifications and reviews. Visibility and transition rules
// are gated by the session store predicates; every mutation that targets
// a specific actor enqueues a notification for them.
//
// None of this state is synchronized through the remote store adapter:
// it is ephemeral by design and lives for the process lifetime.
package interaction

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"uniautomarket/internal/common/logger"
	"uniautomarket/internal/common/metrics"
	"uniautomarket/internal/models"
	"uniautomarket/internal/store/session"
)

type Store struct {
	mu            sync.Mutex
	messages      []models.Message
	threads       []models.ChatThread
	quotes        []models.QuoteRequest
	notifications []models.Notification
	reviews       []models.Review

	session *session.Store
	log     logger.Logger
	now     func() time.Time
	newID   func() string

	notifMu        sync.Mutex
	notifObservers map[int]func(models.Notification)
	nextNotifObs   int
}

func New(sess *session.Store, log logger.Logger) *Store {
	return &Store{
		session:        sess,
		log:            log.WithFields(map[string]interface{}{"store": "interaction"}),
		now:            time.Now,
		newID:          uuid.NewString,
		notifObservers: make(map[int]func(models.Notification)),
	}
}

// SubscribeNotifications registers an observer invoked for every
// notification enqueued by any sub-store; this feeds the toast and
// delivery channels.
func (s *Store) SubscribeNotifications(fn func(models.Notification)) (unsubscribe func()) {
	s.notifMu.Lock()
	id := s.nextNotifObs
	s.nextNotifObs++
	s.notifObservers[id] = fn
	s.notifMu.Unlock()

	return func() {
		s.notifMu.Lock()
		delete(s.notifObservers, id)
		s.notifMu.Unlock()
	}
}

// pushNotification appends a notification and fans it out to observers.
// Fan-out runs on its own goroutine so callers may hold s.mu.
func (s *Store) pushNotification(forActorID string, kind models.NotificationKind, title, body string) models.Notification {
	n := models.Notification{
		ID:         s.newID(),
		ForActorID: forActorID,
		Kind:       kind,
		Title:      title,
		Body:       body,
		CreatedAt:  s.now().UTC(),
	}
	s.notifications = append(s.notifications, n)
	metrics.NotificationsPushed.WithLabelValues(string(kind)).Inc()

	go s.fanOutNotification(n)
	return n
}

func (s *Store) fanOutNotification(n models.Notification) {
	s.notifMu.Lock()
	fns := make([]func(models.Notification), 0, len(s.notifObservers))
	for _, fn := range s.notifObservers {
		fns = append(fns, fn)
	}
	s.notifMu.Unlock()

	for _, fn := range fns {
		fn(n)
	}
}

// currentActorOrGuest resolves the acting identity: the logged-in actor,
// or a generated guest identity when anonymous.
func (s *Store) currentActorOrGuest(guestName string) (id, name string) {
	if actor, ok := s.session.CurrentActor(); ok {
		return actor.ID, actor.Name
	}
	if guestName == "" {
		guestName = "Invitado"
	}
	return "guest-" + s.newID(), guestName
}
