package session

import (
	"sync"
	"time"

	"github.com/stackmint/chatwidget/internal/conversation"
)

// WidgetFactory builds a fresh widget for a session that has none yet.
type WidgetFactory func(sessionID string) *conversation.Widget

// Manager hosts one widget instance per session id. Each session's
// conversation is fully isolated, so clicks and sends from one embedded
// page never reach another.
type Manager struct {
	factory WidgetFactory

	mu      sync.Mutex
	widgets map[string]*entry
}

type entry struct {
	widget   *conversation.Widget
	lastUsed time.Time
}

func NewManager(factory WidgetFactory) *Manager {
	return &Manager{
		factory: factory,
		widgets: make(map[string]*entry),
	}
}

// Get returns the widget for a session, creating it on first use.
func (m *Manager) Get(sessionID string) *conversation.Widget {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.widgets[sessionID]
	if !ok {
		e = &entry{widget: m.factory(sessionID)}
		m.widgets[sessionID] = e
	}
	e.lastUsed = time.Now()
	return e.widget
}

// Cleanup tears down and evicts widgets idle longer than maxAge, so
// abandoned sessions do not accumulate for the life of the process.
func (m *Manager) Cleanup(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, e := range m.widgets {
		if now.Sub(e.lastUsed) > maxAge {
			e.widget.Teardown()
			delete(m.widgets, id)
		}
	}
}

// Len reports how many sessions are currently live.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.widgets)
}
