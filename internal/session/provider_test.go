package session

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps MemoryStore and counts Clear calls.
type countingStore struct {
	*MemoryStore
	clears atomic.Int32
}

func (s *countingStore) Clear() error {
	s.clears.Add(1)
	return s.MemoryStore.Clear()
}

type failingStore struct {
	*MemoryStore
}

func (s *failingStore) Save(string, UserRecord) error {
	return errors.New("quota exceeded")
}

type brokenClearStore struct {
	*MemoryStore
}

func (s *brokenClearStore) Clear() error {
	return errors.New("cookie write failed")
}

func fixedClock(now time.Time) Option {
	return WithClock(func() time.Time { return now })
}

func TestProviderInitRestoresUnexpiredSession(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	store := &countingStore{MemoryStore: NewMemoryStore()}
	token := signToken(t, jwt.MapClaims{"sub": "alice", "exp": now.Add(time.Hour).Unix(), "roles": []string{"ADMIN"}})
	// The stored record is authoritative for the role, not the token.
	require.NoError(t, store.Save(token, UserRecord{Username: "alice", Role: "CUSTOMER"}))

	p := NewProvider(store, fixedClock(now))
	assert.True(t, p.Loading())
	assert.Equal(t, ShowLoading, Decide([]Role{RoleCustomer}, p.Snapshot()))

	assert.Equal(t, StateAuthenticated, p.Init())
	assert.False(t, p.Loading())
	assert.True(t, p.IsAuthenticated())
	assert.Equal(t, RoleCustomer, p.Role())

	user, ok := p.User()
	require.True(t, ok)
	assert.Equal(t, UserRecord{Username: "alice", Role: "CUSTOMER"}, user)

	credential, ok := p.Credential()
	require.True(t, ok)
	assert.Equal(t, token, credential)
	assert.Zero(t, store.clears.Load())
}

func TestProviderInitDiscardsExpiredSession(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	for _, exp := range []time.Time{now.Add(-time.Hour), now.Add(-time.Second), now} {
		store := &countingStore{MemoryStore: NewMemoryStore()}
		token := signToken(t, jwt.MapClaims{"sub": "alice", "exp": exp.Unix()})
		require.NoError(t, store.Save(token, UserRecord{Username: "alice", Role: "CUSTOMER"}))

		p := NewProvider(store, fixedClock(now))
		assert.Equal(t, StateAnonymous, p.Init())
		assert.False(t, p.IsAuthenticated())
		assert.EqualValues(t, 1, store.clears.Load())

		_, _, ok := store.Load()
		assert.False(t, ok)
	}
}

func TestProviderInitDiscardsMalformedOrExpiryLessCredential(t *testing.T) {
	t.Parallel()

	for name, credential := range map[string]string{
		"malformed":  "not-a-token",
		"no exp":     signToken(t, jwt.MapClaims{"sub": "alice"}),
		"bad base64": "a.%%%.c",
	} {
		t.Run(name, func(t *testing.T) {
			store := &countingStore{MemoryStore: NewMemoryStore()}
			require.NoError(t, store.Save(credential, UserRecord{Username: "alice", Role: "ADMIN"}))

			p := NewProvider(store)
			assert.Equal(t, StateAnonymous, p.Init())
			assert.EqualValues(t, 1, store.clears.Load())
		})
	}
}

func TestProviderInitWithEmptyStore(t *testing.T) {
	t.Parallel()

	store := &countingStore{MemoryStore: NewMemoryStore()}
	p := NewProvider(store)

	assert.Equal(t, StateAnonymous, p.Init())
	assert.Zero(t, store.clears.Load())
	assert.Equal(t, Session{}, p.Snapshot())
}

func TestProviderInitResolvesOnce(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	store := NewMemoryStore()
	p := NewProvider(store, fixedClock(now))
	require.Equal(t, StateAnonymous, p.Init())

	token := signToken(t, jwt.MapClaims{"sub": "alice", "exp": now.Add(time.Hour).Unix()})
	require.NoError(t, store.Save(token, UserRecord{Username: "alice", Role: "CUSTOMER"}))

	assert.Equal(t, StateAnonymous, p.Init())
}

func TestProviderLoginAndLogout(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	p := NewProvider(store)
	p.Init()
	p.SetError(errors.New("Invalid username or password"))

	user := UserRecord{Username: "manager1", Role: "MANAGER"}
	require.NoError(t, p.Login("a.b.c", user))
	assert.True(t, p.IsAuthenticated())
	assert.Equal(t, RoleManager, p.Role())
	assert.NoError(t, p.Err())

	credential, stored, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "a.b.c", credential)
	assert.Equal(t, user, stored)

	p.SetError(errors.New("stale"))
	require.NoError(t, p.Logout())
	assert.False(t, p.IsAuthenticated())
	assert.Empty(t, p.Role())
	assert.NoError(t, p.Err())
	_, _, ok = store.Load()
	assert.False(t, ok)
}

func TestProviderLoginSaveFailureKeepsState(t *testing.T) {
	t.Parallel()

	store := &failingStore{MemoryStore: NewMemoryStore()}
	p := NewProvider(store)
	p.Init()

	require.Error(t, p.Login("a.b.c", UserRecord{Username: "alice", Role: "CUSTOMER"}))
	assert.False(t, p.IsAuthenticated())
}

func TestProviderInvalidateOncePerGeneration(t *testing.T) {
	t.Parallel()

	store := &countingStore{MemoryStore: NewMemoryStore()}
	p := NewProvider(store)
	p.Init()
	require.NoError(t, p.Login("a.b.c", UserRecord{Username: "alice", Role: "CUSTOMER"}))

	ticket := p.Ticket()
	assert.Equal(t, "a.b.c", ticket.Credential)

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if p.Invalidate(ticket.Generation) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, wins.Load())
	assert.EqualValues(t, 1, store.clears.Load())
	assert.False(t, p.IsAuthenticated())

	_, ok := p.Credential()
	assert.False(t, ok)
}

func TestProviderInvalidateIgnoresStaleGeneration(t *testing.T) {
	t.Parallel()

	p := NewProvider(NewMemoryStore())
	p.Init()
	stale := p.Ticket()

	require.NoError(t, p.Login("a.b.c", UserRecord{Username: "alice", Role: "CUSTOMER"}))

	// A request started before the login must not log the new session out.
	assert.False(t, p.Invalidate(stale.Generation))
	assert.True(t, p.IsAuthenticated())
}

func TestProviderInvalidateIgnoresAnonymousSession(t *testing.T) {
	t.Parallel()

	store := &countingStore{MemoryStore: NewMemoryStore()}
	p := NewProvider(store)
	p.Init()

	assert.False(t, p.Invalidate(p.Generation()))
	assert.Zero(t, store.clears.Load())
}

type recordingObserver struct {
	mu     sync.Mutex
	events []string
}

func (o *recordingObserver) SessionEvent(event string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func TestProviderNotifiesObserver(t *testing.T) {
	t.Parallel()

	observer := &recordingObserver{}
	p := NewProvider(NewMemoryStore(), WithObserver(observer))
	p.Init()
	require.NoError(t, p.Login("a.b.c", UserRecord{Username: "alice", Role: "CUSTOMER"}))
	p.Invalidate(p.Generation())
	require.NoError(t, p.Logout())

	assert.Equal(t, []string{"login", "invalidated", "logout"}, observer.events)
}

func TestProviderLogoutLogsFailedClear(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	p := NewProvider(&brokenClearStore{MemoryStore: NewMemoryStore()}, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	p.Init()
	token := signToken(t, jwt.MapClaims{"sub": "dana", "exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, p.Login(token, UserRecord{Username: "dana", Role: "MANAGER"}))

	err := p.Logout()

	require.Error(t, err)
	assert.False(t, p.IsAuthenticated())
	assert.Contains(t, logs.String(), "failed to clear session on logout")
	assert.Contains(t, logs.String(), "cookie write failed")
}
