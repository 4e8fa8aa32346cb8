package session_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tamaleria/orderform/internal/order"
	"github.com/tamaleria/orderform/internal/session"
	"github.com/tamaleria/orderform/internal/workflow"
)

const testSecret = "test-secret"

func newStore(ttl time.Duration) *session.Store {
	return session.NewStore(ttl, func() *workflow.Controller {
		return workflow.NewController(order.New(), nil)
	})
}

// --- Tokens ---

func TestTokenRoundTrip(t *testing.T) {
	id := uuid.New()
	token, err := session.GenerateToken(testSecret, id, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := session.ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.SessionID != id {
		t.Errorf("session id: got %s, want %s", claims.SessionID, id)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := session.GenerateToken(testSecret, uuid.New(), time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := session.ValidateToken("other-secret", token); err == nil {
		t.Error("expected validation to fail with the wrong secret")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := session.GenerateToken(testSecret, uuid.New(), -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := session.ValidateToken(testSecret, token); err == nil {
		t.Error("expected validation to fail for an expired token")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := session.ValidateToken(testSecret, "not-a-token"); err == nil {
		t.Error("expected validation to fail for garbage input")
	}
}

// --- Store ---

func TestStore_CreateAndGet(t *testing.T) {
	store := newStore(time.Hour)

	sess := store.Create()
	if sess.Flow == nil {
		t.Fatal("session created without a workflow")
	}
	if sess.Flow.Order().Len() != 1 {
		t.Errorf("fresh order items: got %d, want 1", sess.Flow.Order().Len())
	}

	got, ok := store.Get(sess.ID)
	if !ok {
		t.Fatal("session not found after create")
	}
	if got != sess {
		t.Error("Get returned a different session instance")
	}
}

func TestStore_GetUnknown(t *testing.T) {
	store := newStore(time.Hour)
	if _, ok := store.Get(uuid.New()); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestStore_ExpiredSessionIsDropped(t *testing.T) {
	store := newStore(time.Millisecond)
	sess := store.Create()

	time.Sleep(5 * time.Millisecond)
	if _, ok := store.Get(sess.ID); ok {
		t.Error("expired session should not resolve")
	}
	if store.Len() != 0 {
		t.Errorf("store len after expiry: got %d, want 0", store.Len())
	}
}

func TestStore_TouchExtendsLifetime(t *testing.T) {
	store := newStore(50 * time.Millisecond)
	sess := store.Create()

	// Keep using the session past its original deadline.
	for i := 0; i < 4; i++ {
		time.Sleep(20 * time.Millisecond)
		if _, ok := store.Get(sess.ID); !ok {
			t.Fatalf("active session dropped on lookup %d", i)
		}
	}
}

func TestStore_Delete(t *testing.T) {
	store := newStore(time.Hour)
	sess := store.Create()

	store.Delete(sess.ID)
	if _, ok := store.Get(sess.ID); ok {
		t.Error("deleted session should not resolve")
	}
}

func TestStore_OnCreateRunsForEverySession(t *testing.T) {
	store := newStore(time.Hour)
	var created []uuid.UUID
	store.OnCreate = func(s *session.Session) { created = append(created, s.ID) }

	a := store.Create()
	b := store.Create()
	if len(created) != 2 || created[0] != a.ID || created[1] != b.ID {
		t.Errorf("OnCreate calls: got %v, want [%s %s]", created, a.ID, b.ID)
	}
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	store := newStore(time.Hour)
	a := store.Create()
	b := store.Create()

	a.Flow.Order().AddItem()
	if got := b.Flow.Order().Len(); got != 1 {
		t.Errorf("mutation leaked across sessions: got %d items, want 1", got)
	}
}
