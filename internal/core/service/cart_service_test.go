package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/royalsilk/storefront/internal/core/ports"
)

type stubSessionStore struct {
	sessions map[string]map[string]string
	getErr   error
	setErr   error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]map[string]string)}
}

func (s *stubSessionStore) value(sessionID, key string) (string, bool) {
	values, ok := s.sessions[sessionID]
	if !ok {
		return "", false
	}
	v, ok := values[key]
	return v, ok
}

func (s *stubSessionStore) Get(_ context.Context, sessionID, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.value(sessionID, key)
	return v, ok, nil
}

func (s *stubSessionStore) Set(_ context.Context, sessionID, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	if s.sessions[sessionID] == nil {
		s.sessions[sessionID] = make(map[string]string)
	}
	s.sessions[sessionID][key] = value
	return nil
}

func (s *stubSessionStore) Unset(_ context.Context, sessionID, key string) error {
	delete(s.sessions[sessionID], key)
	return nil
}

func (s *stubSessionStore) Rotate(_ context.Context, oldID, newID string) error {
	s.sessions[newID] = s.sessions[oldID]
	delete(s.sessions, oldID)
	return nil
}

func (s *stubSessionStore) Destroy(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func TestCartService_AddAndContents(t *testing.T) {
	svc := NewCartService(newStubSessionStore(), zerolog.Nop())
	ctx := context.Background()

	if err := svc.Add(ctx, "sid", 5, "s", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Add(ctx, "sid", 5, "S", 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines, err := svc.Contents(ctx, "sid")
	if err != nil {
		t.Fatalf("contents: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 3 || lines[0].Size != "S" {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func TestCartService_EmptySessionYieldsEmptyCart(t *testing.T) {
	svc := NewCartService(newStubSessionStore(), zerolog.Nop())

	lines, err := svc.Contents(context.Background(), "sid")
	if err != nil {
		t.Fatalf("contents: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestCartService_RemoveProductPersists(t *testing.T) {
	sessions := newStubSessionStore()
	svc := NewCartService(sessions, zerolog.Nop())
	ctx := context.Background()

	_ = svc.Add(ctx, "sid", 7, "S", 1)
	_ = svc.Add(ctx, "sid", 7, "M", 2)
	_ = svc.Add(ctx, "sid", 8, "S", 1)

	if err := svc.RemoveProduct(ctx, "sid", 7); err != nil {
		t.Fatalf("remove: %v", err)
	}

	lines, _ := svc.Contents(ctx, "sid")
	if len(lines) != 1 || lines[0].ProductID != 8 {
		t.Fatalf("unexpected lines after remove: %+v", lines)
	}
}

func TestCartService_UpdateQuantities(t *testing.T) {
	svc := NewCartService(newStubSessionStore(), zerolog.Nop())
	ctx := context.Background()

	_ = svc.Add(ctx, "sid", 5, "S", 3)

	if err := svc.UpdateQuantities(ctx, "sid", map[string]int{"5-S": 0}); err != nil {
		t.Fatalf("update: %v", err)
	}

	lines, _ := svc.Contents(ctx, "sid")
	if lines[0].Quantity != 1 {
		t.Fatalf("expected clamp to 1, got %d", lines[0].Quantity)
	}
}

func TestCartService_Clear(t *testing.T) {
	sessions := newStubSessionStore()
	svc := NewCartService(sessions, zerolog.Nop())
	ctx := context.Background()

	_ = svc.Add(ctx, "sid", 5, "S", 3)
	if err := svc.Clear(ctx, "sid"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	lines, _ := svc.Contents(ctx, "sid")
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestCartService_ResetsUndecodableEntry(t *testing.T) {
	sessions := newStubSessionStore()
	_ = sessions.Set(context.Background(), "sid", ports.SessionKeyCart, "{not json")
	svc := NewCartService(sessions, zerolog.Nop())

	lines, err := svc.Contents(context.Background(), "sid")
	if err != nil {
		t.Fatalf("undecodable cart must not fail the request: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected reset cart, got %+v", lines)
	}
}

func TestCartService_SessionIsolation(t *testing.T) {
	svc := NewCartService(newStubSessionStore(), zerolog.Nop())
	ctx := context.Background()

	_ = svc.Add(ctx, "sid-a", 5, "S", 1)

	lines, err := svc.Contents(ctx, "sid-b")
	if err != nil {
		t.Fatalf("contents: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart leaked across sessions: %+v", lines)
	}
}
