// internal/store/interaction/quotes.go
package interaction

import (
	"fmt"
	"strings"

	"uniautomarket/internal/common/metrics"
	"uniautomarket/internal/models"

	apperrors "uniautomarket/internal/common/errors"
)

// QuoteSpec is the payload for a new quote request. ClientID may be
// empty: guests get a generated identity, like messages.
type QuoteSpec struct {
	ClientID     string
	ClientName   string
	ClientEmail  string
	ClientPhone  string
	BusinessID   string
	BusinessName string
	ItemKind     models.ItemKind
	ItemID       string
	ItemName     string
	Quantity     int
	Description  string
}

func (spec QuoteSpec) validate() error {
	if strings.TrimSpace(spec.BusinessID) == "" {
		return apperrors.NewInvalidInputError("businessId is required")
	}
	if strings.TrimSpace(spec.ItemID) == "" {
		return apperrors.NewInvalidInputError("itemId is required")
	}
	if spec.ItemKind != models.ItemProduct && spec.ItemKind != models.ItemService {
		return apperrors.NewInvalidInputError(fmt.Sprintf("unknown item kind %q", spec.ItemKind))
	}
	if spec.Quantity < 1 {
		return apperrors.NewInvalidInputError("quantity must be at least 1")
	}
	return nil
}

// CreateQuote always starts a request at pending and notifies the
// business owner.
func (s *Store) CreateQuote(spec QuoteSpec) (models.QuoteRequest, error) {
	if err := spec.validate(); err != nil {
		return models.QuoteRequest{}, err
	}

	clientID := spec.ClientID
	clientName := spec.ClientName
	if clientID == "" {
		clientID, clientName = s.currentActorOrGuest(spec.ClientName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := models.QuoteRequest{
		ID:           s.newID(),
		ClientID:     clientID,
		ClientName:   clientName,
		ClientEmail:  spec.ClientEmail,
		ClientPhone:  spec.ClientPhone,
		BusinessID:   spec.BusinessID,
		BusinessName: spec.BusinessName,
		ItemKind:     spec.ItemKind,
		ItemID:       spec.ItemID,
		ItemName:     spec.ItemName,
		Quantity:     spec.Quantity,
		Description:  spec.Description,
		State:        models.QuotePending,
		CreatedAt:    s.now().UTC(),
	}
	s.quotes = append(s.quotes, q)
	metrics.InteractionEvents.WithLabelValues("quote_created").Inc()

	if owner, ok := s.session.ActorForBusiness(spec.BusinessID); ok {
		s.pushNotification(owner.ID, models.NotifyQuote,
			"Nueva cotización", clientName+" ha solicitado una cotización de "+spec.ItemName)
	}
	return q, nil
}

// RespondQuote moves pending -> responded with the quoted price. Only
// the actor who can edit the target business may respond. Responding to
// anything but a pending quote is a no-op returning the current state.
func (s *Store) RespondQuote(id string, price int64, note string) (models.QuoteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.quotes {
		if s.quotes[i].ID != id {
			continue
		}
		if !s.session.CanEditBusiness(s.quotes[i].BusinessID) {
			return models.QuoteRequest{}, apperrors.NewForbiddenError("respond quote")
		}
		if s.quotes[i].State != models.QuotePending {
			return s.quotes[i], nil
		}

		s.quotes[i].State = models.QuoteResponded
		s.quotes[i].QuotedPrice = price
		s.quotes[i].ResponseText = note
		s.quotes[i].RespondedAt = s.now().UTC()
		metrics.InteractionEvents.WithLabelValues("quote_responded").Inc()

		s.pushNotification(s.quotes[i].ClientID, models.NotifyQuote,
			"Cotización respondida",
			fmt.Sprintf("%s ha cotizado %s", s.quotes[i].BusinessName, s.quotes[i].ItemName))
		return s.quotes[i], nil
	}
	return models.QuoteRequest{}, apperrors.NewNotFoundError("quote", id)
}

// AcceptQuote moves responded -> accepted (terminal).
func (s *Store) AcceptQuote(id string) (models.QuoteRequest, error) {
	return s.closeQuote(id, models.QuoteAccepted, "quote_accepted", "Cotización aceptada")
}

// RejectQuote moves responded -> rejected (terminal).
func (s *Store) RejectQuote(id string) (models.QuoteRequest, error) {
	return s.closeQuote(id, models.QuoteRejected, "quote_rejected", "Cotización rechazada")
}

// closeQuote applies a terminal transition. Any call from a state other
// than responded is a no-op returning the unchanged quote.
func (s *Store) closeQuote(id string, to models.QuoteState, metric, title string) (models.QuoteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.quotes {
		if s.quotes[i].ID != id {
			continue
		}
		if s.quotes[i].State != models.QuoteResponded {
			return s.quotes[i], nil
		}

		s.quotes[i].State = to
		metrics.InteractionEvents.WithLabelValues(metric).Inc()

		if owner, ok := s.session.ActorForBusiness(s.quotes[i].BusinessID); ok {
			s.pushNotification(owner.ID, models.NotifyQuote, title,
				fmt.Sprintf("%s: %s", s.quotes[i].ClientName, s.quotes[i].ItemName))
		}
		return s.quotes[i], nil
	}
	return models.QuoteRequest{}, apperrors.NewNotFoundError("quote", id)
}

// QuotesForBusiness lists all requests addressed to a business.
func (s *Store) QuotesForBusiness(businessID string) []models.QuoteRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.QuoteRequest
	for _, q := range s.quotes {
		if q.BusinessID == businessID {
			out = append(out, q)
		}
	}
	return out
}

// QuotesForClient lists all requests made by a client.
func (s *Store) QuotesForClient(clientID string) []models.QuoteRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.QuoteRequest
	for _, q := range s.quotes {
		if q.ClientID == clientID {
			out = append(out, q)
		}
	}
	return out
}

// PendingQuoteCount feeds the badge on the business dashboard.
func (s *Store) PendingQuoteCount(businessID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, q := range s.quotes {
		if q.BusinessID == businessID && q.State == models.QuotePending {
			count++
		}
	}
	return count
}
