package consultant

import (
	"sync"
	"time"
)

// Role of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DefaultGreeting opens every conversation unless configured otherwise.
const DefaultGreeting = "Hello! I'm your AI Security Consultant for the TSC project. How can I help you today with the ELV upgrade details?"

// ChatMessage is one turn of the conversation.
type ChatMessage struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation is an append-only message log. Messages are never edited or
// removed; readers get copies.
type Conversation struct {
	mu       sync.RWMutex
	messages []ChatMessage

	nextID    int
	observers map[int]func(ChatMessage)
}

// NewConversation returns a conversation, opened with an assistant greeting
// when greeting is non-empty.
func NewConversation(greeting string) *Conversation {
	c := &Conversation{observers: make(map[int]func(ChatMessage))}
	if greeting != "" {
		c.AppendMessage(ChatMessage{Role: RoleAssistant, Content: greeting})
	}
	return c
}

// AppendMessage adds msg at the end of the log and then notifies observers.
func (c *Conversation) AppendMessage(msg ChatMessage) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	observers := make([]func(ChatMessage), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(msg)
	}
}

// Subscribe registers fn to be called after every append. The returned
// function removes the registration; calling it more than once is harmless.
func (c *Conversation) Subscribe(fn func(ChatMessage)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.observers, id)
			c.mu.Unlock()
		})
	}
}

// Messages returns a snapshot of the log in append order.
func (c *Conversation) Messages() []ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Last returns the most recent message.
func (c *Conversation) Last() (ChatMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.messages) == 0 {
		return ChatMessage{}, false
	}
	return c.messages[len(c.messages)-1], true
}
