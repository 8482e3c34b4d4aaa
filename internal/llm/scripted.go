package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// Reply is one canned answer for Scripted.
type Reply struct {
	Content   json.RawMessage
	Usage     Usage
	Err       error
	Truncated bool
}

// Scripted is an offline Provider that plays back replies in order and
// keeps every request it saw. Replies are validated like real ones.
type Scripted struct {
	mu       sync.Mutex
	replies  []Reply
	requests []Request
}

var _ Provider = (*Scripted)(nil)

// NewScripted queues replies.
func NewScripted(replies ...Reply) *Scripted {
	return &Scripted{replies: replies}
}

// Generate pops the next reply. An empty script makes the provider
// unavailable.
func (s *Scripted) Generate(_ context.Context, req Request) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	if len(s.replies) == 0 {
		return nil, unavailable(ProviderMock, errors.New("script exhausted"))
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	return settle(ProviderMock, req, completion{
		content:   r.Content,
		usage:     r.Usage,
		model:     ProviderMock,
		truncated: r.Truncated,
	})
}

func (s *Scripted) ModelID() string { return ProviderMock }

func (s *Scripted) Name() string { return ProviderMock }

// Queue appends replies to the script.
func (s *Scripted) Queue(replies ...Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, replies...)
}

// Requests returns a copy of the requests received so far.
func (s *Scripted) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}
