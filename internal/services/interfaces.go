package services

import (
	"context"

	"github.com/ajramos/mm3commander/internal/mailman"
)

// Directory is the remote mailing-list directory. *mailman.Client implements it.
type Directory interface {
	// Handshake checks the server speaks the REST API and returns its version
	Handshake(ctx context.Context) (string, error)

	Lists(ctx context.Context) ([]mailman.List, error)
	List(ctx context.Context, fqdn string) (*mailman.List, error)
	DeleteList(ctx context.Context, fqdn string) error

	Members(ctx context.Context, listID string) ([]mailman.Member, error)
	Subscribe(ctx context.Context, req mailman.SubscribeRequest) (*mailman.Member, error)
	Unsubscribe(ctx context.Context, listID, email string) error

	Settings(ctx context.Context, listID string) (*mailman.Settings, error)

	HeldCount(ctx context.Context, listID string) (int, error)
	HeldMessages(ctx context.Context, listID string) ([]mailman.HeldMessage, error)
	HeldMessage(ctx context.Context, listID string, requestID int) (*mailman.HeldMessage, error)

	Configuration(ctx context.Context) (mailman.Configuration, error)
}

var _ Directory = (*mailman.Client)(nil)

// ListService handles list browsing and deletion
type ListService interface {
	Lists(ctx context.Context) ([]mailman.List, error)
	Names(ctx context.Context) ([]string, error)
	Configuration(ctx context.Context) (mailman.Configuration, error)
	DeleteList(ctx context.Context, fqdn, confirmation string) (bool, error)
}

// MembershipService handles the member roster of a list
type MembershipService interface {
	Roster(ctx context.Context, fqdn string) (*Roster, error)
	Subscribe(ctx context.Context, fqdn, address string) (bool, error)
	Unsubscribe(ctx context.Context, fqdn, address, confirmation string) (bool, error)
}

// SettingsService handles per-list settings
type SettingsService interface {
	Settings(ctx context.Context, fqdn string) (*mailman.Settings, error)
	UpdateSetting(ctx context.Context, fqdn, key, input string) (bool, error)
}

// ModerationService exposes the moderation queue of a list
type ModerationService interface {
	Queue(ctx context.Context, fqdn string) (*HeldQueue, error)
	HeldMessage(ctx context.Context, fqdn string, requestID int) (*mailman.HeldMessage, error)
}

// Roster is a freshly fetched member list
type Roster struct {
	List    *mailman.List
	Members []mailman.Member
}

// CountSource tells which query produced a held-message count
type CountSource string

const (
	CountFromQuery    CountSource = "count"
	CountFromFallback CountSource = "fallback"
)

// HeldQueue is a freshly fetched moderation queue
type HeldQueue struct {
	List     *mailman.List
	Count    int
	Source   CountSource
	Messages []mailman.HeldMessage
}
