package chatbot

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shopzone/internal/storage"
)

const (
	maxHistory     = 60
	persistTimeout = 5 * time.Second
)

// Message is one chat turn, role "user" or "bot".
type Message struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Text string `json:"text"`
}

type rule struct {
	match  *regexp.Regexp
	answer string
}

var rules = []rule{
	{regexp.MustCompile(`(hello|hi|hey)`), `Hello! How can I help? You can ask "how do I add an image".`},
	{regexp.MustCompile(`add(ing)? (an? )?image|upload`), `Open Sanity Studio, create a new "Gallery Item", fill in the title, image and description, then Publish. It appears here automatically.`},
	{regexp.MustCompile(`order|sort|reorder`), `Use the "Display Order" field in a gallery item. Lower numbers show first.`},
	{regexp.MustCompile(`deploy|publish`), `The frontend deploys on push. The Studio can be deployed separately if needed.`},
	{regexp.MustCompile(`draft|unpublish`), `Uncheck Published to hide an item. Draft preview could be added later.`},
	{regexp.MustCompile(`tags?`), `Tags are stored and filterable through the gallery endpoint's tag parameter.`},
	{regexp.MustCompile(`help|what can you do`), `I can answer basic questions about the gallery setup, ordering, deployment, and content updates.`},
}

const (
	tooShortReply = "Could you phrase that with a bit more detail?"
	fallbackReply = "Not sure yet. Try asking about: adding images, ordering, deploy, tags, or drafts."
	introReply    = "Hi! I'm Paboy. Ask me about the gallery, images, or how to add content."
)

// Bot answers questions from a fixed rule table and keeps a bounded,
// persisted conversation history.
type Bot struct {
	mu      sync.Mutex
	store   storage.Store
	log     *logrus.Logger
	history []Message
}

func New(store storage.Store, log *logrus.Logger) *Bot {
	if log == nil {
		log = logrus.StandardLogger()
	}
	b := &Bot{store: store, log: log}
	b.history = b.load()
	return b
}

func (b *Bot) load() []Message {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	data, ok, err := b.store.Get(ctx, storage.KeyChatHistory)
	if err != nil {
		b.log.WithError(err).Warn("could not read chat history, starting fresh")
	} else if ok {
		var history []Message
		if err := json.Unmarshal(data, &history); err == nil {
			return history
		}
		b.log.Warn("stored chat history is malformed, starting fresh")
	}
	return []Message{{ID: "intro", Role: "bot", Text: introReply}}
}

func (b *Bot) persistLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	data, err := json.Marshal(b.history)
	if err != nil {
		b.log.WithError(err).Warn("could not encode chat history")
		return
	}
	if err := b.store.Put(ctx, storage.KeyChatHistory, data); err != nil {
		b.log.WithError(err).Warn("could not save chat history")
	}
}

// Reply records the user message, generates the bot answer, trims the
// history to the most recent turns and persists it.
func (b *Bot) Reply(text string) Message {
	text = strings.TrimSpace(text)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.history = append(b.history, Message{ID: uuid.New().String(), Role: "user", Text: text})
	answer := Message{ID: uuid.New().String(), Role: "bot", Text: generateReply(text)}
	b.history = append(b.history, answer)

	if len(b.history) > maxHistory {
		b.history = b.history[len(b.history)-maxHistory:]
	}
	b.persistLocked()
	return answer
}

// History returns a copy of the conversation so far.
func (b *Bot) History() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Message, len(b.history))
	copy(out, b.history)
	return out
}

func generateReply(text string) string {
	q := strings.ToLower(text)
	for _, r := range rules {
		if r.match.MatchString(q) {
			return r.answer
		}
	}
	if len(q) < 6 {
		return tooShortReply
	}
	return fallbackReply
}
