package copilot_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/greenchain/backend/internal/analysis/topic"
	model "github.com/greenchain/backend/internal/model/copilot"
	"github.com/greenchain/backend/internal/service/copilot"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testDelay = 20 * time.Millisecond

func newSession(t *testing.T, svc *copilot.Service) string {
	t.Helper()
	snap, err := svc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	return snap.Session.ID
}

// waitForMessages polls until the transcript reaches n messages.
func waitForMessages(t *testing.T, svc *copilot.Service, sessionID string, n int) []model.Message {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		msgs, err := svc.LoadTranscript(context.Background(), sessionID)
		if err != nil {
			t.Fatalf("LoadTranscript err: %v", err)
		}
		if len(msgs) >= n {
			return msgs
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d messages, have %d", n, len(msgs))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCreateSessionStartsWithGreeting(t *testing.T) {
	svc := copilot.NewService(copilot.WithReplyDelay(testDelay))
	defer svc.Close()

	snap, err := svc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	if len(snap.Messages) != 1 {
		t.Fatalf("expected greeting only, got %d messages", len(snap.Messages))
	}
	greeting := snap.Messages[0]
	if greeting.Role != model.RoleAssistant || greeting.Content != topic.Greeting {
		t.Fatalf("unexpected greeting: %+v", greeting)
	}
	if len(greeting.Suggestions) != len(topic.StarterSuggestions) {
		t.Fatalf("expected starter suggestions, got %v", greeting.Suggestions)
	}
	if snap.Typing {
		t.Fatal("new session should not be typing")
	}
}

func TestSubmitBlankIsNoop(t *testing.T) {
	svc := copilot.NewService(copilot.WithReplyDelay(testDelay))
	defer svc.Close()
	ctx := context.Background()
	id := newSession(t, svc)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, accepted, err := svc.Submit(ctx, id, text)
		if err != nil {
			t.Fatalf("Submit err: %v", err)
		}
		if accepted {
			t.Fatalf("blank text %q should not be accepted", text)
		}
	}

	time.Sleep(3 * testDelay)
	msgs, _ := svc.LoadTranscript(ctx, id)
	if len(msgs) != 1 {
		t.Fatalf("transcript changed: %d messages", len(msgs))
	}
	if typing, _ := svc.Typing(id); typing {
		t.Fatal("blank submission should not start typing")
	}
}

func TestSubmitAppendsUserThenDelayedReply(t *testing.T) {
	svc := copilot.NewService(copilot.WithReplyDelay(testDelay))
	defer svc.Close()
	ctx := context.Background()
	id := newSession(t, svc)

	msg, accepted, err := svc.Submit(ctx, id, "Find buyers for my surplus steel inventory")
	if err != nil || !accepted {
		t.Fatalf("Submit accepted=%v err=%v", accepted, err)
	}
	if msg.Role != model.RoleUser || msg.ID == "" {
		t.Fatalf("unexpected user message: %+v", msg)
	}

	msgs, _ := svc.LoadTranscript(ctx, id)
	if len(msgs) != 2 || msgs[1].ID != msg.ID {
		t.Fatalf("user message not appended synchronously: %+v", msgs)
	}
	if typing, _ := svc.Typing(id); !typing {
		t.Fatal("expected typing while reply is pending")
	}

	msgs = waitForMessages(t, svc, id, 3)
	reply := msgs[2]
	if reply.Role != model.RoleAssistant {
		t.Fatalf("expected assistant reply, got %s", reply.Role)
	}
	if !strings.HasPrefix(reply.Content, "I found 4 potential buyers for your surplus steel inventory") {
		t.Fatalf("unexpected reply: %q", reply.Content)
	}
	if len(reply.Suggestions) != len(topic.FollowUpSuggestions) {
		t.Fatalf("expected follow-up suggestions, got %v", reply.Suggestions)
	}
	if reply.CreatedAt.Before(msgs[1].CreatedAt) {
		t.Fatal("transcript timestamps must not go backwards")
	}
	if typing, _ := svc.Typing(id); typing {
		t.Fatal("expected typing to clear after reply")
	}

	time.Sleep(3 * testDelay)
	if msgs, _ := svc.LoadTranscript(ctx, id); len(msgs) != 3 {
		t.Fatalf("expected exactly one reply, got %d messages", len(msgs))
	}
}

func TestRapidSubmissionsEachGetOneReply(t *testing.T) {
	svc := copilot.NewService(copilot.WithReplyDelay(testDelay))
	defer svc.Close()
	ctx := context.Background()
	id := newSession(t, svc)

	inputs := []string{"How can I reduce waste?", "hello there", "carbon please"}
	for _, in := range inputs {
		if _, ok, err := svc.Submit(ctx, id, in); err != nil || !ok {
			t.Fatalf("Submit(%q) ok=%v err=%v", in, ok, err)
		}
	}

	msgs := waitForMessages(t, svc, id, 1+2*len(inputs))

	var users, assistants int
	for _, m := range msgs[1:] {
		switch m.Role {
		case model.RoleUser:
			users++
		case model.RoleAssistant:
			assistants++
		}
	}
	if users != len(inputs) || assistants != len(inputs) {
		t.Fatalf("expected %d users and assistants, got %d/%d", len(inputs), users, assistants)
	}

	var fallback bool
	for _, m := range msgs {
		if m.Role == model.RoleAssistant && m.Content == topic.DefaultResponse {
			fallback = true
		}
	}
	if !fallback {
		t.Fatal("expected default reply for unmatched input")
	}
}

func TestUnknownSession(t *testing.T) {
	svc := copilot.NewService()
	defer svc.Close()
	ctx := context.Background()

	if _, _, err := svc.Submit(ctx, "missing", "waste"); !errors.Is(err, copilot.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.GetSession(ctx, "missing"); !errors.Is(err, copilot.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, _, err := svc.Subscribe("missing"); !errors.Is(err, copilot.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	svc := copilot.NewService(copilot.WithReplyDelay(testDelay))
	defer svc.Close()
	ctx := context.Background()
	id := newSession(t, svc)

	events, cancel, err := svc.Subscribe(id)
	if err != nil {
		t.Fatalf("Subscribe err: %v", err)
	}
	defer cancel()

	if _, _, err := svc.Submit(ctx, id, "donate"); err != nil {
		t.Fatalf("Submit err: %v", err)
	}

	var got []model.Event
	timeout := time.After(2 * time.Second)
	for len(got) < 4 {
		select {
		case ev := <-events:
			got = append(got, ev)
		case <-timeout:
			t.Fatalf("timed out, got %d events", len(got))
		}
	}

	want := []model.EventType{model.EventMessage, model.EventTyping, model.EventMessage, model.EventTyping}
	for i, ev := range got {
		if ev.Type != want[i] {
			t.Fatalf("event %d: got %s want %s", i, ev.Type, want[i])
		}
	}
	if !got[1].Typing || got[3].Typing {
		t.Fatalf("unexpected typing sequence: %v %v", got[1].Typing, got[3].Typing)
	}
	if got[2].Message == nil || got[2].Message.Role != model.RoleAssistant {
		t.Fatalf("expected assistant message event, got %+v", got[2])
	}

	cancel()
	if _, ok := <-events; ok {
		t.Fatal("expected channel closed after cancel")
	}
}

func TestCloseStopsPendingReplies(t *testing.T) {
	svc := copilot.NewService(copilot.WithReplyDelay(time.Hour))
	ctx := context.Background()
	id := newSession(t, svc)

	events, cancel, err := svc.Subscribe(id)
	if err != nil {
		t.Fatalf("Subscribe err: %v", err)
	}
	defer cancel()

	if _, _, err := svc.Submit(ctx, id, "waste"); err != nil {
		t.Fatalf("Submit err: %v", err)
	}

	svc.Close()
	svc.Close()

	for range events {
	}
	if _, _, err := svc.Submit(ctx, id, "steel"); !errors.Is(err, copilot.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if _, err := svc.CreateSession(ctx); !errors.Is(err, copilot.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if _, _, err := svc.Subscribe(id); !errors.Is(err, copilot.ErrClosed) {
		t.Fatalf("expected ErrClosed from Subscribe, got %v", err)
	}
	if _, _, _, err := svc.Watch(id); !errors.Is(err, copilot.ErrClosed) {
		t.Fatalf("expected ErrClosed from Watch, got %v", err)
	}
}

func TestWatchStartsAfterSnapshot(t *testing.T) {
	svc := copilot.NewService(copilot.WithReplyDelay(200 * time.Millisecond))
	defer svc.Close()
	ctx := context.Background()
	id := newSession(t, svc)

	user, _, err := svc.Submit(ctx, id, "steel")
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}

	snap, events, cancel, err := svc.Watch(id)
	if err != nil {
		t.Fatalf("Watch err: %v", err)
	}
	defer cancel()

	if len(snap.Messages) != 2 || snap.Messages[1].ID != user.ID || !snap.Typing {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Type != model.EventMessage {
				continue
			}
			if ev.Message.ID == user.ID {
				t.Fatal("message already in snapshot was delivered again")
			}
			if ev.Message.Role != model.RoleAssistant {
				t.Fatalf("unexpected message event: %+v", ev.Message)
			}
			return
		case <-timeout:
			t.Fatal("timed out waiting for reply event")
		}
	}
}

type stubGenerator struct {
	mu        sync.Mutex
	calls     []string
	histories map[string][]model.Message
	text      string
	err       error
}

func (g *stubGenerator) Generate(_ context.Context, history []model.Message, input string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, input)
	if g.histories == nil {
		g.histories = make(map[string][]model.Message)
	}
	g.histories[input] = history
	if len(history) == 0 {
		return "", errors.New("missing history")
	}
	return g.text, g.err
}

func (g *stubGenerator) historyFor(input string) []model.Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.histories[input]
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func TestGeneratorAnswersUnmatchedOnly(t *testing.T) {
	gen := &stubGenerator{text: "Try a material passport."}
	svc := copilot.NewService(copilot.WithReplyDelay(testDelay), copilot.WithGenerator(gen))
	defer svc.Close()
	ctx := context.Background()
	id := newSession(t, svc)

	if _, _, err := svc.Submit(ctx, id, "steel"); err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	msgs := waitForMessages(t, svc, id, 3)
	if !strings.HasPrefix(msgs[2].Content, "I found 4 potential buyers") {
		t.Fatalf("matched topic should not use generator: %q", msgs[2].Content)
	}

	if _, _, err := svc.Submit(ctx, id, "what is a material passport?"); err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	msgs = waitForMessages(t, svc, id, 5)
	if msgs[4].Content != "Try a material passport." {
		t.Fatalf("expected generated reply, got %q", msgs[4].Content)
	}
	if gen.callCount() != 1 {
		t.Fatalf("expected one generator call, got %d", gen.callCount())
	}
}

func TestGeneratorFailureFallsBack(t *testing.T) {
	gen := &stubGenerator{err: errors.New("ark unavailable")}
	svc := copilot.NewService(copilot.WithReplyDelay(testDelay), copilot.WithGenerator(gen))
	defer svc.Close()
	ctx := context.Background()
	id := newSession(t, svc)

	if _, _, err := svc.Submit(ctx, id, "hello there"); err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	msgs := waitForMessages(t, svc, id, 3)
	if msgs[2].Content != topic.DefaultResponse {
		t.Fatalf("expected default reply, got %q", msgs[2].Content)
	}
}

func TestGeneratorHistoryStopsAtQuestion(t *testing.T) {
	gen := &stubGenerator{text: "Pallets can be pooled."}
	svc := copilot.NewService(copilot.WithReplyDelay(testDelay), copilot.WithGenerator(gen))
	defer svc.Close()
	ctx := context.Background()
	id := newSession(t, svc)

	for _, in := range []string{"hello there", "what about pallets"} {
		if _, _, err := svc.Submit(ctx, id, in); err != nil {
			t.Fatalf("Submit(%q) err: %v", in, err)
		}
	}
	waitForMessages(t, svc, id, 5)

	first := gen.historyFor("hello there")
	if len(first) != 2 || first[1].Content != "hello there" {
		t.Fatalf("history for first question includes later turns: %+v", first)
	}
	second := gen.historyFor("what about pallets")
	if n := len(second); n < 3 || second[n-1].Content != "what about pallets" {
		t.Fatalf("unexpected history for second question: %+v", second)
	}
}

// blockingGenerator holds Generate open until its context ends.
type blockingGenerator struct {
	started  chan struct{}
	returned chan struct{}
}

func (g *blockingGenerator) Generate(ctx context.Context, _ []model.Message, _ string) (string, error) {
	defer close(g.returned)
	close(g.started)
	<-ctx.Done()
	return "", ctx.Err()
}

func TestCloseCancelsInflightGeneration(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}), returned: make(chan struct{})}
	svc := copilot.NewService(copilot.WithReplyDelay(testDelay), copilot.WithGenerator(gen))
	ctx := context.Background()
	id := newSession(t, svc)

	if _, _, err := svc.Submit(ctx, id, "what is a material passport?"); err != nil {
		t.Fatalf("Submit err: %v", err)
	}

	select {
	case <-gen.started:
	case <-time.After(2 * time.Second):
		t.Fatal("generator never started")
	}

	svc.Close()

	select {
	case <-gen.returned:
	default:
		t.Fatal("Close returned while generation was still running")
	}
	goleak.VerifyNone(t)

	msgs, _ := svc.LoadTranscript(ctx, id)
	if len(msgs) != 2 {
		t.Fatalf("no reply should be appended after Close, got %d messages", len(msgs))
	}
}
