package conversation

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stackmint/chatwidget/internal/content"
	"github.com/stackmint/chatwidget/internal/webhook"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// Shown when the webhook call fails or returns garbage.
	failureReply = "Sorry, I'm having trouble processing your message. Please try again later."

	// Pacing delay between a canned-response click and the webhook call,
	// so the user's bubble visibly lands before the assistant reacts.
	DefaultCannedDelay = 500 * time.Millisecond
)

// Message is one entry in the conversation log. Never mutated once appended.
type Message struct {
	ID          string               `json:"id"`
	Role        string               `json:"role"`
	Text        string               `json:"text,omitempty"`
	Timestamp   time.Time            `json:"timestamp"`
	Interactive *content.Interactive `json:"interactive,omitempty"`
}

// Sender is the outbound half of the webhook protocol.
type Sender interface {
	Send(ctx context.Context, prompt string) (*webhook.Payload, error)
}

// Options configures a Widget at construction; zero values take defaults.
type Options struct {
	CannedDelay   time.Duration
	OpenByDefault bool
	// OnUpdate fires after every state change, outside the widget's lock.
	OnUpdate func()
}

// Widget owns one conversation: the append-only message log, the open flag
// and the single in-flight-send guard. All methods are safe for concurrent
// use; the log is only ever appended to while holding the lock.
type Widget struct {
	sender      Sender
	cannedDelay time.Duration
	onUpdate    func()

	mu           sync.Mutex
	cond         *sync.Cond
	open         bool
	pendingInput string
	sending      bool
	busy         int // in-flight sends plus pending pacing timers
	messages     []Message
	done         chan struct{}
}

func New(sender Sender, opts Options) *Widget {
	if opts.CannedDelay == 0 {
		opts.CannedDelay = DefaultCannedDelay
	}
	w := &Widget{
		sender:      sender,
		cannedDelay: opts.CannedDelay,
		onUpdate:    opts.OnUpdate,
		open:        opts.OpenByDefault,
		done:        make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *Widget) closed() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// Teardown stops the widget. Results of sends still in flight are dropped
// instead of being applied to a dead conversation.
func (w *Widget) Teardown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed() {
		close(w.done)
		w.cond.Broadcast()
	}
}

func (w *Widget) Open()  { w.setOpen(true) }
func (w *Widget) Close() { w.setOpen(false) }

func (w *Widget) Toggle() {
	w.mu.Lock()
	w.open = !w.open
	w.mu.Unlock()
	w.notify()
}

func (w *Widget) setOpen(open bool) {
	w.mu.Lock()
	changed := w.open != open
	w.open = open
	w.mu.Unlock()
	if changed {
		w.notify()
	}
}

func (w *Widget) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

func (w *Widget) IsSending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sending
}

func (w *Widget) SetInput(text string) {
	w.mu.Lock()
	w.pendingInput = text
	w.mu.Unlock()
}

func (w *Widget) Input() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pendingInput
}

// Messages returns a snapshot of the conversation log.
func (w *Widget) Messages() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Message, len(w.messages))
	copy(out, w.messages)
	return out
}

// Submit sends one user message. It is rejected (returns false) when the
// trimmed text is empty or another send is already in flight, which keeps
// at most one outstanding request per widget.
func (w *Widget) Submit(text string) bool {
	trimmed := strings.TrimSpace(text)

	w.mu.Lock()
	if trimmed == "" || w.sending || w.closed() {
		w.mu.Unlock()
		return false
	}
	w.messages = append(w.messages, userMessage(text))
	w.pendingInput = ""
	w.sending = true
	w.busy++
	w.mu.Unlock()

	w.notify()
	go w.send(text)
	return true
}

// SelectCannedResponse handles a quick-reply click: the user's bubble
// appears immediately with the option's label, and the webhook is called
// after the pacing delay with the option's value (label when absent).
func (w *Widget) SelectCannedResponse(text, value string) {
	prompt := value
	if prompt == "" {
		prompt = text
	}

	w.mu.Lock()
	if w.closed() {
		w.mu.Unlock()
		return
	}
	w.messages = append(w.messages, userMessage(text))
	w.busy++
	w.mu.Unlock()

	w.notify()
	time.AfterFunc(w.cannedDelay, func() { w.claimAndSend(prompt) })
}

// WaitIdle blocks until no send is in flight and no pacing timer is pending.
func (w *Widget) WaitIdle(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		w.mu.Lock()
		w.cond.Broadcast()
		w.mu.Unlock()
	})
	defer stop()

	w.mu.Lock()
	defer w.mu.Unlock()
	for w.busy > 0 && !w.closed() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.cond.Wait()
	}
	return nil
}

func userMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// claimAndSend is the pacing-timer entry point. A submit may have claimed
// the sending flag during the delay window; the canned send waits its turn
// rather than racing it.
func (w *Widget) claimAndSend(prompt string) {
	w.mu.Lock()
	for w.sending && !w.closed() {
		w.cond.Wait()
	}
	if w.closed() {
		w.busy--
		w.cond.Broadcast()
		w.mu.Unlock()
		return
	}
	w.sending = true
	w.mu.Unlock()

	w.send(prompt)
}

// send performs the webhook call and applies its result. The sending flag
// is already claimed by the caller.
func (w *Widget) send(prompt string) {
	payload, err := w.sender.Send(context.Background(), prompt)
	if err != nil {
		log.Printf("conversation: webhook send failed: %v", err)
	}

	msg := Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
	}
	switch {
	case err != nil:
		msg.Text = failureReply
	default:
		if ic, ok := payload.Interactive(); ok {
			msg.Interactive = &ic
		} else {
			msg.Text = payload.Text()
		}
	}

	w.mu.Lock()
	w.busy--
	w.sending = false
	w.cond.Broadcast()
	if w.closed() {
		w.mu.Unlock()
		return
	}
	w.messages = append(w.messages, msg)
	w.mu.Unlock()

	w.notify()
}

func (w *Widget) notify() {
	if w.onUpdate != nil {
		w.onUpdate()
	}
}
