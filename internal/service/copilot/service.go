package copilot

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/greenchain/backend/internal/analysis/topic"
	"github.com/greenchain/backend/internal/model/copilot"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrClosed          = errors.New("copilot service closed")
)

const (
	defaultDelay      = 1500 * time.Millisecond
	generateTimeout   = 20 * time.Second
	subscriberBacklog = 32
)

// Generator produces a free-form answer for questions no topic rule covers.
type Generator interface {
	Generate(ctx context.Context, history []copilot.Message, input string) (string, error)
}

// Option customises a Service.
type Option func(*Service)

// WithReplyDelay sets how long the assistant "types" before answering.
func WithReplyDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithResolver replaces the stock topic resolver.
func WithResolver(r *topic.Resolver) Option {
	return func(s *Service) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithGenerator answers unmatched questions with g instead of the fallback text.
func WithGenerator(g Generator) Option {
	return func(s *Service) {
		s.generator = g
	}
}

type conversation struct {
	session     copilot.Session
	messages    []copilot.Message
	pending     int
	subscribers map[uint64]chan copilot.Event
}

// Service owns Copilot conversations. User turns are appended synchronously;
// each one schedules an independent one-shot timer that appends the reply.
type Service struct {
	resolver  *topic.Resolver
	generator Generator
	delay     time.Duration
	now       func() time.Time

	// ctx is cancelled by Close so in-flight generator calls stop with it.
	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup

	mu     sync.RWMutex
	convs  map[string]*conversation
	timers map[uint64]*time.Timer
	nextID uint64
	closed bool
}

// NewService bootstraps the in-memory conversation service.
func NewService(opts ...Option) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		ctx:      ctx,
		cancel:   cancel,
		resolver: topic.Default(),
		delay:    defaultDelay,
		now:      time.Now,
		convs:    make(map[string]*conversation),
		timers:   make(map[uint64]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolver exposes the topic resolver used for replies.
func (s *Service) Resolver() *topic.Resolver {
	return s.resolver
}

// CreateSession starts a conversation that opens with the assistant greeting.
func (s *Service) CreateSession(_ context.Context) (copilot.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return copilot.Snapshot{}, ErrClosed
	}

	session := copilot.Session{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
	}
	conv := &conversation{
		session:     session,
		messages:    make([]copilot.Message, 0, 16),
		subscribers: make(map[uint64]chan copilot.Event),
	}
	s.appendLocked(conv, copilot.RoleAssistant, topic.Greeting, topic.StarterSuggestions)
	s.convs[session.ID] = conv

	return snapshotOf(conv), nil
}

// GetSession returns the session with a copy of its transcript.
func (s *Service) GetSession(_ context.Context, sessionID string) (copilot.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.convs[sessionID]
	if !ok {
		return copilot.Snapshot{}, ErrSessionNotFound
	}
	return snapshotOf(conv), nil
}

// LoadTranscript returns the messages of a session in append order.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]copilot.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.convs[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneMessages(conv.messages), nil
}

// Typing reports whether a reply is pending for the session.
func (s *Service) Typing(sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.convs[sessionID]
	if !ok {
		return false, ErrSessionNotFound
	}
	return conv.pending > 0, nil
}

// Submit appends the user's text and schedules the assistant reply.
// Blank text is ignored: accepted is false and nothing changes.
func (s *Service) Submit(_ context.Context, sessionID, text string) (copilot.Message, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.convs[sessionID]
	if !ok {
		return copilot.Message{}, false, ErrSessionNotFound
	}
	if strings.TrimSpace(text) == "" {
		return copilot.Message{}, false, nil
	}
	if s.closed {
		return copilot.Message{}, false, ErrClosed
	}

	msg := s.appendLocked(conv, copilot.RoleUser, text, nil)
	asked := len(conv.messages)
	conv.pending++
	publishLocked(conv, copilot.Event{Type: copilot.EventTyping, SessionID: sessionID, Typing: true})

	s.nextID++
	id := s.nextID
	// the callback needs s.mu, so it cannot observe the map before this insert
	s.timers[id] = time.AfterFunc(s.delay, func() {
		s.reply(id, sessionID, text, asked)
	})

	return msg, true, nil
}

// Subscribe streams transcript events for a session until cancel is called.
// Slow readers miss events rather than stall the conversation.
func (s *Service) Subscribe(sessionID string) (<-chan copilot.Event, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.openLocked(sessionID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.subscribeLocked(conv)
	return ch, cancel, nil
}

// Watch returns the current snapshot and a subscription that starts right
// after it, so no event is missed or repeated between the two.
func (s *Service) Watch(sessionID string) (copilot.Snapshot, <-chan copilot.Event, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.openLocked(sessionID)
	if err != nil {
		return copilot.Snapshot{}, nil, nil, err
	}
	ch, cancel := s.subscribeLocked(conv)
	return snapshotOf(conv), ch, cancel, nil
}

func (s *Service) openLocked(sessionID string) (*conversation, error) {
	conv, ok := s.convs[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.closed {
		return nil, ErrClosed
	}
	return conv, nil
}

func (s *Service) subscribeLocked(conv *conversation) (<-chan copilot.Event, func()) {
	s.nextID++
	id := s.nextID
	ch := make(chan copilot.Event, subscriberBacklog)
	conv.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := conv.subscribers[id]; ok {
				delete(conv.subscribers, id)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Close stops replies that have not fired yet, cancels the ones being
// generated, ends every subscription and waits for in-flight replies to exit.
func (s *Service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cancel()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	for _, conv := range s.convs {
		for id, ch := range conv.subscribers {
			delete(conv.subscribers, id)
			close(ch)
		}
	}
	count := len(s.convs)
	s.mu.Unlock()

	s.inflight.Wait()
	log.Printf("[copilot] closed with %d conversations", count)
}

// reply answers the user turn at position asked-1. Turns appended after it
// are left out of the history handed to the generator.
func (s *Service) reply(timerID uint64, sessionID, text string, asked int) {
	s.mu.Lock()
	delete(s.timers, timerID)
	conv, ok := s.convs[sessionID]
	if !ok || s.closed {
		s.mu.Unlock()
		return
	}
	s.inflight.Add(1)
	defer s.inflight.Done()
	history := cloneMessages(conv.messages[:asked])
	s.mu.Unlock()

	answer := s.compose(history, text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	conv.pending--
	s.appendLocked(conv, copilot.RoleAssistant, answer.Text, answer.Suggestions)
	publishLocked(conv, copilot.Event{Type: copilot.EventTyping, SessionID: sessionID, Typing: conv.pending > 0})
}

// compose resolves the reply outside the lock since the generator may block.
func (s *Service) compose(history []copilot.Message, text string) topic.Reply {
	answer := s.resolver.Resolve(text)
	if s.generator == nil || answer.Topic != "" {
		return answer
	}

	ctx, cancel := context.WithTimeout(s.ctx, generateTimeout)
	defer cancel()

	generated, err := s.generator.Generate(ctx, history, text)
	if err != nil {
		log.Printf("[copilot] generator failed, using fallback reply: %v", err)
		return answer
	}
	if generated = strings.TrimSpace(generated); generated == "" {
		return answer
	}

	answer.Text = generated
	return answer
}

// appendLocked stamps and appends a message, keeping createdAt non-decreasing.
func (s *Service) appendLocked(conv *conversation, role copilot.Role, content string, suggestions []string) copilot.Message {
	createdAt := s.now().UTC()
	if n := len(conv.messages); n > 0 && createdAt.Before(conv.messages[n-1].CreatedAt) {
		createdAt = conv.messages[n-1].CreatedAt
	}

	msg := copilot.Message{
		ID:          uuid.NewString(),
		SessionID:   conv.session.ID,
		Role:        role,
		Content:     content,
		Suggestions: append([]string(nil), suggestions...),
		CreatedAt:   createdAt,
	}
	conv.messages = append(conv.messages, msg)

	event := copilot.Event{Type: copilot.EventMessage, SessionID: conv.session.ID, Message: &msg, Typing: conv.pending > 0}
	publishLocked(conv, event)
	return msg
}

func publishLocked(conv *conversation, event copilot.Event) {
	for _, ch := range conv.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func snapshotOf(conv *conversation) copilot.Snapshot {
	return copilot.Snapshot{
		Session:  conv.session,
		Messages: cloneMessages(conv.messages),
		Typing:   conv.pending > 0,
	}
}

func cloneMessages(messages []copilot.Message) []copilot.Message {
	copied := make([]copilot.Message, len(messages))
	copy(copied, messages)
	return copied
}
