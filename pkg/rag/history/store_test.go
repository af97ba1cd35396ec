package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddAndMessages(t *testing.T) {
	store := NewStore()

	assert.False(t, store.Has("session-1"))
	assert.Empty(t, store.Messages("session-1"))

	store.Add("session-1", Message{Role: RoleSystem, Content: "system"})
	store.Add("session-1", Message{Role: RoleHuman, Content: "hallo", TokenCount: 1})
	store.Add("session-1", Message{Role: RoleAI, Content: "guten tag", TokenCount: 2})

	assert.True(t, store.Has("session-1"))

	messages := store.Messages("session-1")
	require.Len(t, messages, 3)
	assert.Equal(t, RoleSystem, messages[0].Role)
	assert.Equal(t, "hallo", messages[1].Content)
	assert.Equal(t, "guten tag", messages[2].Content)
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	store := NewStore()

	store.Add("a", Message{Role: RoleHuman, Content: "eins", TokenCount: 1})
	store.Add("b", Message{Role: RoleHuman, Content: "zwei", TokenCount: 1})

	assert.Len(t, store.Messages("a"), 1)
	assert.Len(t, store.Messages("b"), 1)
	assert.Equal(t, "eins", store.Messages("a")[0].Content)
}

func TestStoreMessagesReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Add("s", Message{Role: RoleHuman, Content: "original", TokenCount: 1})

	messages := store.Messages("s")
	messages[0].Content = "mutiert"

	assert.Equal(t, "original", store.Messages("s")[0].Content)
}

func TestStoreConcurrentAppends(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			session := fmt.Sprintf("session-%d", n%2)
			for j := 0; j < 50; j++ {
				store.Add(session, Message{Role: RoleHuman, Content: "m", TokenCount: 1})
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Messages("session-0"), 250)
	assert.Len(t, store.Messages("session-1"), 250)
}
