// internal/notify/dispatcher.go
package notify

import (
	"context"

	"uniautomarket/internal/common/logger"
	"uniautomarket/internal/models"
	"uniautomarket/internal/store/session"
)

// Dispatcher fans one notification out to every configured channel. The
// toast only fires when the addressee is the logged-in actor; email and
// SMS resolve the addressee's contact details from the directory. Nil
// channels are skipped.
type Dispatcher struct {
	session *session.Store
	toaster Toaster
	email   *EmailChannel
	sms     *SMSChannel
	log     logger.Logger
}

func NewDispatcher(sess *session.Store, toaster Toaster, email *EmailChannel, sms *SMSChannel, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		session: sess,
		toaster: toaster,
		email:   email,
		sms:     sms,
		log:     log.WithFields(map[string]interface{}{"component": "dispatcher"}),
	}
}

// Dispatch delivers one notification. Meant to be registered with the
// interaction store's SubscribeNotifications.
func (d *Dispatcher) Dispatch(n models.Notification) {
	d.DispatchContext(context.Background(), n)
}

func (d *Dispatcher) DispatchContext(ctx context.Context, n models.Notification) {
	if d.toaster != nil {
		if current, ok := d.session.CurrentActor(); ok && current.ID == n.ForActorID {
			d.toaster.Info(n.Title + ": " + n.Body)
		}
	}

	if d.email == nil && d.sms == nil {
		return
	}

	actor, ok := d.session.ActorByID(n.ForActorID)
	if !ok {
		// Guests have no directory entry and no out-of-band channel.
		return
	}
	if d.email != nil {
		d.email.Send(ctx, actor.Email, n.Title, n.Body)
	}
	if d.sms != nil {
		d.sms.Send(ctx, actor.Phone, n.Title+": "+n.Body)
	}
}
