// Package chat keeps a streamed conversation with a language model in a
// consistent state while reply fragments arrive.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type Sender string

const (
	User  Sender = "user"
	Model Sender = "model"
)

type Feedback string

const (
	NoFeedback Feedback = ""
	Liked      Feedback = "liked"
)

const WelcomeText = "Hello! I'm NP Chatbot. How can I assist you today?"

var (
	ErrEmptyPrompt    = errors.New("empty prompt")
	ErrBusy           = errors.New("a reply is still streaming")
	ErrMissingAPIKey  = errors.New("missing API key: set [Chat] APIKey, GEMINI_API_KEY or API_KEY")
	ErrUnknownMessage = errors.New("unknown message")
)

type Message struct {
	ID       string
	Sender   Sender
	Text     string
	Feedback Feedback
}

// Display is the text as shown to the user, with bold markers stripped
func (m Message) Display() string {
	return strings.ReplaceAll(m.Text, "**", "")
}

// Streamer produces reply fragments for a history ending in a user message.
// It sends on out until done and must not close it.
type Streamer interface {
	Stream(ctx context.Context, history []Message, out chan<- string) error
}

// Exchange identifies one prompt and its reply while the reply streams
type Exchange struct {
	UserID  string
	ReplyID string
}

// Conversation is safe for concurrent use. At most one exchange is open.
type Conversation struct {
	mu       sync.Mutex
	messages []Message
	open     *Exchange
}

// NewConversation starts with the welcome message
func NewConversation() *Conversation {
	return &Conversation{
		messages: []Message{{ID: uuid.New().String(), Sender: Model, Text: WelcomeText}},
	}
}

// Messages returns a copy of the transcript
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open != nil
}

// Begin appends the trimmed prompt and an empty reply placeholder
func (c *Conversation) Begin(text string) (Exchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Exchange{}, ErrEmptyPrompt
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open != nil {
		return Exchange{}, ErrBusy
	}

	ex := Exchange{UserID: uuid.New().String(), ReplyID: uuid.New().String()}
	c.messages = append(c.messages,
		Message{ID: ex.UserID, Sender: User, Text: text},
		Message{ID: ex.ReplyID, Sender: Model},
	)
	c.open = &ex
	return ex, nil
}

// History is what the model sees for ex: everything before the reply
func (c *Conversation) History(ex Exchange) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(ex.ReplyID)
	if i < 0 {
		i = len(c.messages)
	}
	out := make([]Message, i)
	copy(out, c.messages[:i])
	return out
}

// Append grows the reply of an open exchange
func (c *Conversation) Append(ex Exchange, chunk string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open == nil || *c.open != ex {
		return
	}
	if i := c.index(ex.ReplyID); i >= 0 {
		c.messages[i].Text += chunk
	}
}

// Finish closes ex. A cancelled stream keeps whatever text arrived and
// drops an empty reply. Any other error removes the prompt and the reply
// and is returned wrapped.
func (c *Conversation) Finish(ex Exchange, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open == nil || *c.open != ex {
		return nil
	}
	c.open = nil

	switch {
	case err == nil:
		log.Printf("chat: reply %s complete", ex.ReplyID)
		return nil
	case errors.Is(err, context.Canceled):
		if i := c.index(ex.ReplyID); i >= 0 && c.messages[i].Text == "" {
			c.remove(ex.ReplyID)
		}
		log.Printf("chat: reply %s stopped by user", ex.ReplyID)
		return nil
	default:
		c.remove(ex.ReplyID)
		c.remove(ex.UserID)
		log.Printf("chat: reply %s failed: %v", ex.ReplyID, err)
		return fmt.Errorf("chat: %w", err)
	}
}

// Send runs a whole exchange, calling onChunk for every fragment as it
// lands. It returns when the stream ends or ctx is cancelled.
func (c *Conversation) Send(ctx context.Context, text string, s Streamer, onChunk func(string)) error {
	ex, err := c.Begin(text)
	if err != nil {
		return err
	}

	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		errc <- s.Stream(ctx, c.History(ex), out)
		close(out)
	}()

	for chunk := range out {
		c.Append(ex, chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	}
	return c.Finish(ex, <-errc)
}

// Like toggles the like on a model reply and returns the new feedback
func (c *Conversation) Like(id string) (Feedback, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 || c.messages[i].Sender != Model {
		return NoFeedback, fmt.Errorf("%w: %s", ErrUnknownMessage, id)
	}
	if c.messages[i].Feedback == Liked {
		c.messages[i].Feedback = NoFeedback
	} else {
		c.messages[i].Feedback = Liked
	}
	return c.messages[i].Feedback, nil
}

// LastReply is the newest model message with text, welcome excluded
func (c *Conversation) LastReply() (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.messages) - 1; i > 0; i-- {
		if m := c.messages[i]; m.Sender == Model && m.Text != "" {
			return m, true
		}
	}
	return Message{}, false
}

func (c *Conversation) index(id string) int {
	for i, m := range c.messages {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (c *Conversation) remove(id string) {
	if i := c.index(id); i >= 0 {
		c.messages = append(c.messages[:i], c.messages[i+1:]...)
	}
}
