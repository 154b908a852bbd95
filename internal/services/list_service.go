package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ajramos/mm3commander/internal/mailman"
)

// ListServiceImpl implements ListService
type ListServiceImpl struct {
	dir    Directory
	logger *log.Logger
}

// NewListService creates a new list service
func NewListService(dir Directory, logger *log.Logger) *ListServiceImpl {
	return &ListServiceImpl{dir: dir, logger: logger}
}

func (s *ListServiceImpl) Lists(ctx context.Context) ([]mailman.List, error) {
	lists, err := s.dir.Lists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mailing lists: %w", err)
	}
	return lists, nil
}

// Names returns the fully-qualified list names in server order
func (s *ListServiceImpl) Names(ctx context.Context) ([]string, error) {
	lists, err := s.Lists(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(lists))
	for _, l := range lists {
		names = append(names, l.FQDNListname)
	}
	return names, nil
}

func (s *ListServiceImpl) Configuration(ctx context.Context) (mailman.Configuration, error) {
	conf, err := s.dir.Configuration(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load global configuration: %w", err)
	}
	return conf, nil
}

// DeleteList deletes the list only when confirmation is exactly its name.
// A mismatch returns false without touching the server.
func (s *ListServiceImpl) DeleteList(ctx context.Context, fqdn, confirmation string) (bool, error) {
	if strings.TrimSpace(fqdn) == "" {
		return false, fmt.Errorf("list name cannot be empty: %w", mailman.ErrInvalidInput)
	}
	if !ConfirmsDeletion(fqdn, confirmation) {
		return false, nil
	}
	if err := s.dir.DeleteList(ctx, fqdn); err != nil {
		if s.logger != nil {
			s.logger.Printf("delete list %s failed: %v", fqdn, err)
		}
		return false, fmt.Errorf("failed to delete %s: %w", fqdn, err)
	}
	if s.logger != nil {
		s.logger.Printf("deleted list %s", fqdn)
	}
	return true, nil
}

// ConfirmsDeletion requires the typed confirmation to match the list name exactly
func ConfirmsDeletion(fqdn, confirmation string) bool {
	return fqdn != "" && confirmation == fqdn
}
