// Package tutor manages the append-only conversation with the study tutor.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/llm"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/studygen"
)

var (
	// ErrAwaitingReply is returned by Ask while a previous question is
	// still unanswered.
	ErrAwaitingReply = errors.New("tutor: still waiting for the previous reply")

	// ErrEmptyQuestion is returned by Ask for a blank question.
	ErrEmptyQuestion = errors.New("tutor: question is empty")

	// ErrUnavailable wraps every collaborator failure surfaced by Ask.
	ErrUnavailable = errors.New("tutor: Dr. Recall is currently unavailable")

	// ErrDiscarded is returned when the conversation was reset while the
	// reply was in flight. The reply is dropped.
	ErrDiscarded = errors.New("tutor: conversation was reset before the reply arrived")
)

// FallbackReply is appended as the model's turn when the tutor fails.
const FallbackReply = "Sorry, I encountered an error: Dr. Recall is currently unavailable."

// Role is the sender of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is a single chat turn.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Config controls tutor requests.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 1024, Temperature: 0.7}
}

// Conversation is an append-only chat log grounded in the learner's study
// text. Messages are never retracted; a failed reply becomes a visible
// model message.
type Conversation struct {
	mu       sync.Mutex
	provider llm.Provider
	config   Config
	context  string
	messages []Message
	pending  bool
	epoch    uint64
	onChange func()
}

// New creates an empty Conversation.
func New(provider llm.Provider, cfg Config) *Conversation {
	return &Conversation{provider: provider, config: cfg}
}

// OnChange registers fn to be called after every change to the log. fn is
// called without the lock held.
func (c *Conversation) OnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// SetContext replaces the study text the tutor answers from. History is
// kept.
func (c *Conversation) SetContext(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.context = text
}

// Context returns the current study text.
func (c *Conversation) Context() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.context
}

// History returns a copy of the conversation, oldest first.
func (c *Conversation) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// Pending reports whether a reply is in flight.
func (c *Conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Reset clears the log and the context. An in-flight reply is discarded
// when it arrives.
func (c *Conversation) Reset() {
	c.mu.Lock()
	c.messages = nil
	c.context = ""
	c.pending = false
	c.epoch++
	c.mu.Unlock()
	c.notify()
}

// Ask appends the question, requests a reply and appends it. On failure
// the fallback reply is appended instead and the error is returned
// wrapping ErrUnavailable.
func (c *Conversation) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return "", ErrAwaitingReply
	}
	req := llm.Request{
		System:      studygen.TutorSystemPrompt(c.context),
		Messages:    toLLMMessages(c.messages, question),
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}
	c.messages = append(c.messages, Message{Role: RoleUser, Text: question})
	c.pending = true
	epoch := c.epoch
	c.mu.Unlock()
	c.notify()

	resp, err := c.provider.Generate(llm.WithPurpose(ctx, llm.PurposeTutor), req)

	reply := strings.TrimSpace(resp.Text())
	if err == nil && reply == "" {
		err = &llm.ErrInvalidResponse{Err: errors.New("empty tutor reply")}
	}

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return "", ErrDiscarded
	}
	if err != nil {
		reply = FallbackReply
	}
	c.messages = append(c.messages, Message{Role: RoleModel, Text: reply})
	c.pending = false
	c.mu.Unlock()
	c.notify()

	if err != nil {
		return reply, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return reply, nil
}

func (c *Conversation) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// toLLMMessages maps the log onto provider roles and appends the new
// question.
func toLLMMessages(history []Message, question string) []llm.Message {
	out := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == RoleModel {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Text})
	}
	return append(out, llm.Message{Role: llm.RoleUser, Content: question})
}
