package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackmint/chatwidget/internal/conversation"
)

func newTestManager() (*Manager, *int) {
	created := 0
	m := NewManager(func(string) *conversation.Widget {
		created++
		return conversation.New(nil, conversation.Options{})
	})
	return m, &created
}

func TestGetCreatesOncePerSession(t *testing.T) {
	m, created := newTestManager()

	a := m.Get("s1")
	b := m.Get("s1")
	c := m.Get("s2")

	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, *created)
	assert.Equal(t, 2, m.Len())
}

func TestCleanupEvictsStaleWidgets(t *testing.T) {
	m, _ := newTestManager()

	stale := m.Get("old")
	time.Sleep(20 * time.Millisecond)
	fresh := m.Get("new")

	m.Cleanup(10 * time.Millisecond)
	assert.Equal(t, 1, m.Len())

	// the stale widget was torn down, the fresh one survives untouched
	assert.False(t, stale.Submit("hello"))
	assert.Same(t, fresh, m.Get("new"))
}

func TestCleanupKeepsRecentlyUsed(t *testing.T) {
	m, created := newTestManager()

	m.Get("s1")
	m.Cleanup(time.Hour)
	m.Get("s1")

	assert.Equal(t, 1, *created)
}
