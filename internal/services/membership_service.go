package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ajramos/mm3commander/internal/mailman"
)

// MembershipServiceImpl implements MembershipService
type MembershipServiceImpl struct {
	dir    Directory
	logger *log.Logger
}

// NewMembershipService creates a new membership service
func NewMembershipService(dir Directory, logger *log.Logger) *MembershipServiceImpl {
	return &MembershipServiceImpl{dir: dir, logger: logger}
}

func (s *MembershipServiceImpl) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// Roster fetches the list and its members
func (s *MembershipServiceImpl) Roster(ctx context.Context, fqdn string) (*Roster, error) {
	list, err := s.dir.List(ctx, fqdn)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", fqdn, err)
	}
	members, err := s.dir.Members(ctx, list.ListID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members of %s: %w", fqdn, err)
	}
	return &Roster{List: list, Members: members}, nil
}

// Subscribe adds address to the list without any confirmation step.
// Empty input returns false and issues no call.
func (s *MembershipServiceImpl) Subscribe(ctx context.Context, fqdn, address string) (bool, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return false, nil
	}
	list, err := s.dir.List(ctx, fqdn)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", fqdn, err)
	}
	if _, err := s.dir.Subscribe(ctx, NewSubscription(list.ListID, address)); err != nil {
		s.logf("subscribe %s to %s failed: %v", address, fqdn, err)
		return false, fmt.Errorf("failed to subscribe %s to %s: %w", address, fqdn, err)
	}
	s.logf("subscribed %s to %s", address, fqdn)
	return true, nil
}

// Unsubscribe removes address when the confirmation starts with "yes".
// Anything else returns false and issues no call.
func (s *MembershipServiceImpl) Unsubscribe(ctx context.Context, fqdn, address, confirmation string) (bool, error) {
	if !ConfirmsRemoval(confirmation) {
		return false, nil
	}
	list, err := s.dir.List(ctx, fqdn)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", fqdn, err)
	}
	if err := s.dir.Unsubscribe(ctx, list.ListID, address); err != nil {
		s.logf("unsubscribe %s from %s failed: %v", address, fqdn, err)
		return false, fmt.Errorf("failed to unsubscribe %s from %s: %w", address, fqdn, err)
	}
	s.logf("unsubscribed %s from %s", address, fqdn)
	return true, nil
}

// NewSubscription builds a pre-approved subscription using the address as display name
func NewSubscription(listID, address string) mailman.SubscribeRequest {
	return mailman.SubscribeRequest{
		ListID:       listID,
		Subscriber:   address,
		DisplayName:  address,
		PreVerified:  true,
		PreConfirmed: true,
		PreApproved:  true,
	}
}

// ConfirmsRemoval accepts any response starting with "yes", ignoring case
func ConfirmsRemoval(confirmation string) bool {
	return strings.HasPrefix(strings.ToLower(confirmation), "yes")
}
