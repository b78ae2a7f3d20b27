// internal/store/interaction/store_test.go
package interaction

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniautomarket/internal/common/config"
	"uniautomarket/internal/common/logger"
	"uniautomarket/internal/models"
	"uniautomarket/internal/store/session"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestSession(t *testing.T) *session.Store {
	return session.New(config.SeedConfig{
		SuperAdmin: config.ActorSeed{
			ID:       "superadmin-1",
			Name:     "Super Administrador",
			Email:    "admin@uniautomarket.cl",
			Password: "super-secret",
		},
		Businesses: []config.ActorSeed{
			{ID: "owner-1", Name: "Dueño Taller", Email: "taller@example.cl", Password: "taller-pass", BusinessID: "biz-1"},
			{ID: "owner-2", Name: "Dueño Grúa", Email: "grua@example.cl", Password: "grua-pass", BusinessID: "biz-2"},
		},
	}, logger.NewTestLogger(t))
}

func createTestStore(t *testing.T) (*Store, *session.Store) {
	sess := createTestSession(t)
	return New(sess, logger.NewTestLogger(t)), sess
}

// createClient registers and logs in a client actor.
func createClient(t *testing.T, sess *session.Store, name, email string) models.Actor {
	_, err := sess.Login("admin@uniautomarket.cl", "super-secret")
	require.NoError(t, err)
	actor, err := sess.CreateActor(session.ActorSpec{
		Name: name, Email: email, Password: "client-pass", Role: models.RoleClient,
	})
	require.NoError(t, err)
	_, err = sess.Login(email, "client-pass")
	require.NoError(t, err)
	return actor
}

func loginOwner(t *testing.T, sess *session.Store) {
	_, err := sess.Login("taller@example.cl", "taller-pass")
	require.NoError(t, err)
}

// ==========================
// Notification Feed
// ==========================

func TestStore_Notifications_ReadAndDismiss(t *testing.T) {
	store, sess := createTestStore(t)
	createClient(t, sess, "Cliente", "cliente@example.cl")

	_, err := store.SendMessage(MessageSpec{BusinessID: "biz-1", Body: "Hola"})
	require.NoError(t, err)

	feed := store.NotificationsFor("owner-1")
	require.Len(t, feed, 1)
	assert.False(t, feed[0].Read)
	assert.Equal(t, models.NotifyMessage, feed[0].Kind)
	assert.Equal(t, 1, store.UnreadNotificationCount("owner-1"))

	store.MarkNotificationRead(feed[0].ID)
	assert.Equal(t, 0, store.UnreadNotificationCount("owner-1"))

	store.DismissNotification(feed[0].ID)
	assert.Empty(t, store.NotificationsFor("owner-1"))
}

func TestStore_Notifications_MarkAllRead(t *testing.T) {
	store, sess := createTestStore(t)
	createClient(t, sess, "Cliente", "cliente@example.cl")

	for i := 0; i < 3; i++ {
		_, err := store.SendMessage(MessageSpec{BusinessID: "biz-1", Body: "Hola"})
		require.NoError(t, err)
	}
	require.Equal(t, 3, store.UnreadNotificationCount("owner-1"))

	store.MarkAllNotificationsRead("owner-1")

	assert.Equal(t, 0, store.UnreadNotificationCount("owner-1"))
}

func TestStore_Notifications_MissingIDsAreNoOps(t *testing.T) {
	store, _ := createTestStore(t)

	store.MarkNotificationRead("missing")
	store.DismissNotification("missing")

	assert.Equal(t, 0, store.UnreadNotificationCount("owner-1"))
}

func TestStore_SubscribeNotifications(t *testing.T) {
	store, sess := createTestStore(t)
	createClient(t, sess, "Cliente", "cliente@example.cl")

	var mu sync.Mutex
	var received []models.Notification
	done := make(chan struct{}, 1)
	unsubscribe := store.SubscribeNotifications(func(n models.Notification) {
		mu.Lock()
		received = append(received, n)
		mu.Unlock()
		done <- struct{}{}
	})
	defer unsubscribe()

	_, err := store.SendMessage(MessageSpec{BusinessID: "biz-1", Body: "Hola"})
	require.NoError(t, err)
	<-done

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, "owner-1", received[0].ForActorID)
}

func TestStore_SubscribeNotifications_UnsubscribeStopsDelivery(t *testing.T) {
	store, sess := createTestStore(t)
	createClient(t, sess, "Cliente", "cliente@example.cl")

	calls := make(chan models.Notification, 4)
	unsubscribe := store.SubscribeNotifications(func(n models.Notification) { calls <- n })
	unsubscribe()

	_, err := store.SendMessage(MessageSpec{BusinessID: "biz-1", Body: "Hola"})
	require.NoError(t, err)

	select {
	case n := <-calls:
		t.Fatalf("unexpected delivery after unsubscribe: %+v", n)
	default:
	}
}
