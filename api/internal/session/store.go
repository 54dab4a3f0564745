package session

import (
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"recipe-chef/api/internal/gdrive"
)

type Store struct {
	resetDelay  time.Duration
	authTimeout time.Duration
	ttl         time.Duration
	now         func() time.Time

	mu      sync.Mutex
	byID    map[string]*Session
	byState map[string]string // oauth state -> session id

	cron *cron.Cron
}

func NewStore(ttl, resetDelay, authTimeout time.Duration) *Store {
	return &Store{
		resetDelay:  resetDelay,
		authTimeout: authTimeout,
		ttl:         ttl,
		now:         time.Now,
		byID:        make(map[string]*Session),
		byState:     make(map[string]string),
	}
}

// Get returns the live session with that id.
func (st *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	st.mu.Lock()
	s, ok := st.byID[id]
	st.mu.Unlock()
	if ok {
		s.touch(st.now())
	}
	return s, ok
}

// Ensure returns the session for id, creating a fresh one when id is unknown.
func (st *Store) Ensure(id string) *Session {
	if s, ok := st.Get(id); ok {
		return s
	}
	s := &Session{
		ID:       uuid.NewString(),
		upload:   gdrive.NewTracker(st.resetDelay, st.authTimeout),
		lastSeen: st.now(),
	}
	s.upload.OnChange = func(from, to gdrive.Status) {
		log.WithFields(log.Fields{"session": s.ID, "from": from, "to": to}).Debug("upload status")
	}
	st.mu.Lock()
	st.byID[s.ID] = s
	st.mu.Unlock()
	return s
}

// NewOAuthState binds a fresh state token to the session, dropping its previous one.
func (st *Store) NewOAuthState(s *Session) string {
	state := uuid.NewString()
	s.mu.Lock()
	prev := s.oauthState
	s.oauthState = state
	s.mu.Unlock()

	st.mu.Lock()
	if prev != "" {
		delete(st.byState, prev)
	}
	st.byState[state] = s.ID
	st.mu.Unlock()
	return state
}

// TakeOAuthState resolves and consumes a state token.
func (st *Store) TakeOAuthState(state string) (*Session, bool) {
	st.mu.Lock()
	id, ok := st.byState[state]
	if ok {
		delete(st.byState, state)
	}
	st.mu.Unlock()
	if !ok {
		return nil, false
	}
	s, ok := st.Get(id)
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	if s.oauthState == state {
		s.oauthState = ""
	}
	s.mu.Unlock()
	return s, true
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.byID)
}

// Sweep drops sessions idle for longer than the TTL. Sessions with a
// request or save in flight are kept.
func (st *Store) Sweep() int {
	now := st.now()
	var stale []*Session

	st.mu.Lock()
	for id, s := range st.byID {
		if s.idleSince(now) <= st.ttl || s.busy() {
			continue
		}
		delete(st.byID, id)
		stale = append(stale, s)
	}
	for state, id := range st.byState {
		if _, ok := st.byID[id]; !ok {
			delete(st.byState, state)
		}
	}
	st.mu.Unlock()

	for _, s := range stale {
		s.upload.Stop()
	}
	if len(stale) > 0 {
		log.WithField("dropped", len(stale)).Info("session sweep")
	}
	return len(stale)
}

// StartSweeper runs Sweep on the cron spec, e.g. "@every 10m".
func (st *Store) StartSweeper(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { st.Sweep() }); err != nil {
		return err
	}
	c.Start()
	st.cron = c
	return nil
}

func (st *Store) StopSweeper() {
	if st.cron != nil {
		<-st.cron.Stop().Done()
	}
}
