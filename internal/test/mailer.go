package test

import (
	"context"
	"sync"

	"github.com/mysmilelab/labsync/internal/adapter/mailer"
)

// SentMail records one accepted message.
type SentMail struct {
	Identity mailer.Identity
	Params   map[string]string
}

// SenderStub implements mailer.Sender with optional failure injection.
type SenderStub struct {
	mu     sync.Mutex
	SendFn func(context.Context, mailer.Identity, map[string]string) error
	Sent   []SentMail
}

// Lock exposes the internal mutex for external synchronization.
func (s *SenderStub) Lock() { s.mu.Lock() }

// Unlock releases a previously acquired lock.
func (s *SenderStub) Unlock() { s.mu.Unlock() }

// Send records the message unless the injected function fails first.
func (s *SenderStub) Send(ctx context.Context, id mailer.Identity, params map[string]string) error {
	if s.SendFn != nil {
		if err := s.SendFn(ctx, id, params); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, SentMail{Identity: id, Params: params})
	return nil
}
