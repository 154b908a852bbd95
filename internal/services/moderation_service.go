package services

import (
	"context"
	"fmt"
	"log"

	"github.com/ajramos/mm3commander/internal/mailman"
)

// ModerationServiceImpl implements ModerationService
type ModerationServiceImpl struct {
	dir    Directory
	logger *log.Logger
}

// NewModerationService creates a new moderation service
func NewModerationService(dir Directory, logger *log.Logger) *ModerationServiceImpl {
	return &ModerationServiceImpl{dir: dir, logger: logger}
}

func (s *ModerationServiceImpl) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// Queue fetches the list, its held messages and their count. The count comes
// from the count query; when that fails the length of the queue is used.
func (s *ModerationServiceImpl) Queue(ctx context.Context, fqdn string) (*HeldQueue, error) {
	list, err := s.dir.List(ctx, fqdn)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", fqdn, err)
	}

	held, err := s.dir.HeldMessages(ctx, list.ListID)
	if err != nil {
		return nil, fmt.Errorf("failed to load held messages of %s: %w", fqdn, err)
	}

	queue := &HeldQueue{List: list, Messages: held, Source: CountFromQuery}
	queue.Count, err = s.dir.HeldCount(ctx, list.ListID)
	if err != nil {
		if mailman.IsUnsupported(err) {
			s.logf("held count not supported for %s, counting queue", fqdn)
		} else {
			s.logf("held count for %s failed, counting queue: %v", fqdn, err)
		}
		queue.Count = len(held)
		queue.Source = CountFromFallback
	}
	return queue, nil
}

// HeldMessage fetches one held message by request id
func (s *ModerationServiceImpl) HeldMessage(ctx context.Context, fqdn string, requestID int) (*mailman.HeldMessage, error) {
	list, err := s.dir.List(ctx, fqdn)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", fqdn, err)
	}
	m, err := s.dir.HeldMessage(ctx, list.ListID, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load held message %d of %s: %w", requestID, fqdn, err)
	}
	return m, nil
}
