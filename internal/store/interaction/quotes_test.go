// internal/store/interaction/quotes_test.go
package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniautomarket/internal/models"

	apperrors "uniautomarket/internal/common/errors"
)

func createTestQuote(t *testing.T, store *Store) models.QuoteRequest {
	q, err := store.CreateQuote(QuoteSpec{
		ClientName:   "Juan",
		ClientEmail:  "juan@example.cl",
		BusinessID:   "biz-1",
		BusinessName: "Taller",
		ItemKind:     models.ItemProduct,
		ItemID:       "prod-1",
		ItemName:     "Alternador",
		Quantity:     1,
	})
	require.NoError(t, err)
	return q
}

func TestStore_CreateQuote(t *testing.T) {
	store, _ := createTestStore(t)

	q := createTestQuote(t, store)

	assert.Equal(t, models.QuotePending, q.State)
	assert.False(t, q.State.Terminal())
	assert.NotEmpty(t, q.ClientID)
	assert.Equal(t, 1, store.PendingQuoteCount("biz-1"))
	// The business owner hears about the new request.
	require.Len(t, store.NotificationsFor("owner-1"), 1)
	assert.Equal(t, models.NotifyQuote, store.NotificationsFor("owner-1")[0].Kind)
}

func TestStore_CreateQuote_Validation(t *testing.T) {
	tests := []struct {
		name string
		spec QuoteSpec
	}{
		{
			name: "missing business",
			spec: QuoteSpec{ItemKind: models.ItemProduct, ItemID: "p", Quantity: 1},
		},
		{
			name: "missing item",
			spec: QuoteSpec{BusinessID: "biz-1", ItemKind: models.ItemProduct, Quantity: 1},
		},
		{
			name: "unknown item kind",
			spec: QuoteSpec{BusinessID: "biz-1", ItemKind: "bundle", ItemID: "p", Quantity: 1},
		},
		{
			name: "zero quantity",
			spec: QuoteSpec{BusinessID: "biz-1", ItemKind: models.ItemProduct, ItemID: "p"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := createTestStore(t)

			_, err := store.CreateQuote(tt.spec)

			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))
		})
	}
}

func TestStore_RespondQuote(t *testing.T) {
	store, sess := createTestStore(t)
	q := createTestQuote(t, store)

	loginOwner(t, sess)
	responded, err := store.RespondQuote(q.ID, 45000, "Disponible, entrega inmediata")

	require.NoError(t, err)
	assert.Equal(t, models.QuoteResponded, responded.State)
	assert.Equal(t, int64(45000), responded.QuotedPrice)
	assert.False(t, responded.RespondedAt.IsZero())
	assert.Equal(t, 0, store.PendingQuoteCount("biz-1"))

	// The requesting client is notified.
	feed := store.NotificationsFor(q.ClientID)
	require.Len(t, feed, 1)
	assert.Equal(t, "Cotización respondida", feed[0].Title)
}

func TestStore_RespondQuote_Authorization(t *testing.T) {
	store, sess := createTestStore(t)
	q := createTestQuote(t, store)

	// Anonymous caller.
	sess.Logout()
	_, err := store.RespondQuote(q.ID, 1000, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))

	// The other business owner.
	_, err = sess.Login("grua@example.cl", "grua-pass")
	require.NoError(t, err)
	_, err = store.RespondQuote(q.ID, 1000, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestStore_QuoteTransitions(t *testing.T) {
	tests := []struct {
		name          string
		close         func(*Store, string) (models.QuoteRequest, error)
		expectedState models.QuoteState
	}{
		{
			name:          "accept",
			close:         (*Store).AcceptQuote,
			expectedState: models.QuoteAccepted,
		},
		{
			name:          "reject",
			close:         (*Store).RejectQuote,
			expectedState: models.QuoteRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, sess := createTestStore(t)
			q := createTestQuote(t, store)
			loginOwner(t, sess)
			_, err := store.RespondQuote(q.ID, 45000, "")
			require.NoError(t, err)

			closed, err := tt.close(store, q.ID)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedState, closed.State)
			assert.True(t, closed.State.Terminal())
		})
	}
}

func TestStore_QuoteTransitions_WrongStateIsNoOp(t *testing.T) {
	store, sess := createTestStore(t)
	q := createTestQuote(t, store)

	// Accepting a pending quote does nothing.
	unchanged, err := store.AcceptQuote(q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuotePending, unchanged.State)

	loginOwner(t, sess)
	_, err = store.RespondQuote(q.ID, 45000, "")
	require.NoError(t, err)
	_, err = store.AcceptQuote(q.ID)
	require.NoError(t, err)

	// Terminal states never move again.
	still, err := store.RejectQuote(q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteAccepted, still.State)

	// Responding again is equally inert.
	resp, err := store.RespondQuote(q.ID, 99999, "tarde")
	require.NoError(t, err)
	assert.Equal(t, int64(45000), resp.QuotedPrice)
}

func TestStore_QuoteTransitions_NotFound(t *testing.T) {
	store, sess := createTestStore(t)
	loginOwner(t, sess)

	_, err := store.RespondQuote("missing", 1, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = store.AcceptQuote("missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStore_QuoteListings(t *testing.T) {
	store, sess := createTestStore(t)
	client := createClient(t, sess, "Cliente", "cliente@example.cl")

	_, err := store.CreateQuote(QuoteSpec{
		BusinessID: "biz-1", BusinessName: "Taller",
		ItemKind: models.ItemService, ItemID: "svc-1", ItemName: "Retiro", Quantity: 1,
	})
	require.NoError(t, err)
	_, err = store.CreateQuote(QuoteSpec{
		BusinessID: "biz-2", BusinessName: "Grúas",
		ItemKind: models.ItemProduct, ItemID: "prod-9", ItemName: "Gancho", Quantity: 2,
	})
	require.NoError(t, err)

	assert.Len(t, store.QuotesForClient(client.ID), 2)
	assert.Len(t, store.QuotesForBusiness("biz-1"), 1)
	assert.Len(t, store.QuotesForBusiness("biz-2"), 1)
	assert.Equal(t, 1, store.PendingQuoteCount("biz-1"))
}
