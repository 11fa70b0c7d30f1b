package attendance

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ticketTTL bounds how long an unknown tap waits for the operator to
// type a name before the tap is discarded.
const ticketTTL = 2 * time.Minute

// ErrTicketNotFound means the registration ticket is unknown or expired.
var ErrTicketNotFound = errors.New("registration ticket not found or expired")

// Ticket is a pending registration minted for an unknown token. It
// carries the original tap timestamp so completing the registration
// replays the tap at the moment the card was presented.
type Ticket struct {
	ID        string    `json:"id"`
	Token     int64     `json:"token"`
	TappedAt  time.Time `json:"tappedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RegistrationRequired is returned from ProcessTap when the token has no
// directory entry. The embedded ticket lets the caller complete or
// cancel the registration.
type RegistrationRequired struct {
	Ticket Ticket
}

func (e *RegistrationRequired) Error() string {
	return fmt.Sprintf("token %d is not registered", e.Ticket.Token)
}

// requireRegistration mints a ticket for the unknown token. Callers hold
// s.mu. Stale tickets are swept on the way through.
func (s *Service) requireRegistration(token int64, now time.Time) error {
	for id, t := range s.pending {
		if now.After(t.ExpiresAt) {
			delete(s.pending, id)
		}
	}

	ticket := Ticket{
		ID:        uuid.NewString(),
		Token:     token,
		TappedAt:  now,
		ExpiresAt: now.Add(ticketTTL),
	}
	s.pending[ticket.ID] = ticket
	return &RegistrationRequired{Ticket: ticket}
}

// CompleteRegistration names the ticket's token in the directory, then
// replays the held tap through the normal transition rule using its
// original timestamp. The ticket survives a rejected name so the
// operator can retry without re-tapping.
func (s *Service) CompleteRegistration(ticketID, name string, now time.Time) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.pending[ticketID]
	if !ok {
		return nil, ErrTicketNotFound
	}
	if now.After(ticket.ExpiresAt) {
		delete(s.pending, ticketID)
		return nil, ErrTicketNotFound
	}

	if s.current == nil {
		return nil, ErrNoSheetOpen
	}

	if err := s.directory.Register(ticket.Token, name); err != nil {
		return nil, err
	}
	delete(s.pending, ticketID)

	return s.applyTap(name, ticket.Token, ticket.TappedAt)
}

// CancelRegistration discards a pending ticket; the held tap is dropped.
func (s *Service) CancelRegistration(ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[ticketID]; !ok {
		return ErrTicketNotFound
	}
	delete(s.pending, ticketID)
	return nil
}
