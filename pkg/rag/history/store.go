package history

import (
	"sync"

	"github.com/patrickmn/go-cache"
)

// Role tags a chat message variant.
type Role string

const (
	RoleSystem Role = "system"
	RoleHuman  Role = "human"
	RoleAI     Role = "ai"
)

// Message is one turn in a session's chat history. TokenCount is computed
// once via the model tokenizer when the message is inserted and never
// recomputed; Human and AI messages must carry it before entering history
// (System messages are exempt from the budget check).
type Message struct {
	Role       Role
	Content    string
	TokenCount int
}

// Store keeps per-session ordered message logs in process memory. Sessions
// are created on first append and retained for the process lifetime
// (cache.NoExpiration); the go-cache backing leaves a TTL knob available
// should eviction ever be wanted. All access is serialized through one
// lock so append order within a session matches pipeline completion order.
type Store struct {
	mu       sync.Mutex
	sessions *cache.Cache
}

func NewStore() *Store {
	return &Store{
		// No janitor: nothing expires, nothing needs purging.
		sessions: cache.New(cache.NoExpiration, 0),
	}
}

// Add appends a message to the session's log, creating the session if it
// does not exist yet.
func (s *Store) Add(sessionID string, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []Message
	if x, found := s.sessions.Get(sessionID); found {
		messages = x.([]Message)
	}
	messages = append(messages, msg)
	s.sessions.Set(sessionID, messages, cache.NoExpiration)
}

// Messages returns a copy of the session's log in chronological order, or
// an empty slice for an unknown session.
func (s *Store) Messages(sessionID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, found := s.sessions.Get(sessionID)
	if !found {
		return []Message{}
	}
	messages := x.([]Message)

	out := make([]Message, len(messages))
	copy(out, messages)
	return out
}

// Has reports whether the session already owns any messages. The pipeline
// uses this to decide whether the system prompt still needs seeding.
func (s *Store) Has(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, found := s.sessions.Get(sessionID)
	return found
}
