// internal/notify/dispatcher_test.go
package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
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

type fakeSES struct {
	mu    sync.Mutex
	calls []*ses.SendEmailInput
}

func (f *fakeSES) SendEmail(ctx context.Context, input *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, input)
	return &ses.SendEmailOutput{}, nil
}

type fakeSNS struct {
	mu    sync.Mutex
	calls []*sns.PublishInput
}

func (f *fakeSNS) Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, input)
	return &sns.PublishOutput{}, nil
}

func createTestSession(t *testing.T) *session.Store {
	return session.New(config.SeedConfig{
		SuperAdmin: config.ActorSeed{
			ID:       "superadmin-1",
			Name:     "Super Administrador",
			Email:    "admin@uniautomarket.cl",
			Password: "super-secret",
		},
		Businesses: []config.ActorSeed{
			{
				ID: "owner-1", Name: "Dueño Taller",
				Email: "taller@example.cl", Password: "taller-pass",
				Phone: "+56911111111", BusinessID: "biz-1",
			},
		},
	}, logger.NewTestLogger(t))
}

func notification(forActorID string) models.Notification {
	return models.Notification{
		ID:         "n-1",
		ForActorID: forActorID,
		Kind:       models.NotifyMessage,
		Title:      "Nuevo mensaje",
		Body:       "Has recibido un mensaje",
		CreatedAt:  time.Now(),
	}
}

// ==========================
// Dispatch
// ==========================

func TestDispatcher_ToastOnlyForCurrentActor(t *testing.T) {
	sess := createTestSession(t)
	toaster := NewRecordingToaster()
	d := NewDispatcher(sess, toaster, nil, nil, logger.NewTestLogger(t))

	// Nobody logged in: no toast.
	d.Dispatch(notification("owner-1"))
	assert.Empty(t, toaster.Toasts())

	// The addressee is the current session: toast fires.
	_, err := sess.Login("taller@example.cl", "taller-pass")
	require.NoError(t, err)
	d.Dispatch(notification("owner-1"))
	require.Len(t, toaster.Toasts(), 1)
	assert.Equal(t, LevelInfo, toaster.Toasts()[0].Level)
	assert.Contains(t, toaster.Toasts()[0].Message, "Nuevo mensaje")

	// Someone else's notification never toasts this session.
	d.Dispatch(notification("superadmin-1"))
	assert.Len(t, toaster.Toasts(), 1)
}

func TestDispatcher_EmailAndSMSResolveContactFromDirectory(t *testing.T) {
	sess := createTestSession(t)
	sesClient := &fakeSES{}
	snsClient := &fakeSNS{}
	d := NewDispatcher(sess, nil,
		NewEmailChannelWithClient(sesClient, "no-reply@uniautomarket.cl", logger.NewNoOpLogger()),
		NewSMSChannelWithClient(snsClient, logger.NewNoOpLogger()),
		logger.NewTestLogger(t))

	d.Dispatch(notification("owner-1"))

	require.Len(t, sesClient.calls, 1)
	assert.Equal(t, "taller@example.cl", sesClient.calls[0].Destination.ToAddresses[0])
	assert.Equal(t, "no-reply@uniautomarket.cl", *sesClient.calls[0].Source)

	require.Len(t, snsClient.calls, 1)
	assert.Equal(t, "+56911111111", *snsClient.calls[0].PhoneNumber)
	assert.Contains(t, *snsClient.calls[0].Message, "Nuevo mensaje")
}

func TestDispatcher_GuestsHaveNoOutOfBandChannel(t *testing.T) {
	sess := createTestSession(t)
	sesClient := &fakeSES{}
	d := NewDispatcher(sess, nil,
		NewEmailChannelWithClient(sesClient, "no-reply@uniautomarket.cl", logger.NewNoOpLogger()),
		nil, logger.NewTestLogger(t))

	d.Dispatch(notification("guest-abc123"))

	assert.Empty(t, sesClient.calls)
}

func TestDispatcher_SkipsActorsWithoutPhone(t *testing.T) {
	sess := createTestSession(t)
	snsClient := &fakeSNS{}
	d := NewDispatcher(sess, nil, nil,
		NewSMSChannelWithClient(snsClient, logger.NewNoOpLogger()),
		logger.NewTestLogger(t))

	// The seeded super-admin has no phone number.
	d.Dispatch(notification("superadmin-1"))

	assert.Empty(t, snsClient.calls)
}
