package chat

import (
	"taxchat/internal/gateway"
	"taxchat/internal/utils"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn. ID is server-assigned once persisted;
// before that (guest mode, or a turn still in flight) it carries a
// locally generated placeholder so per-message controls keep working.
type Message struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Pending is the one-slot queue of a submitted question. Dispatch is
// driven by this slot, never by inspecting the transcript, so a
// re-render can not re-trigger a request.
type Pending struct {
	MessageID string // placeholder ID of the user turn awaiting an answer
	Question  string
	Failed    bool
	Notice    string // user-facing failure text when Failed
}

// Session is all process-local state for one interactive session. It
// is created empty, mutated only through Manager handlers, and Reset
// on logout. The backend base URL lives on the gateway client and
// survives a reset.
type Session struct {
	Token              string
	Messages           []Message
	Conversations      []gateway.ConversationSummary
	ActiveConversation string // empty means "new, unsaved conversation"
	Pending            *Pending
}

func NewSession() *Session {
	return &Session{}
}

func (s Session) Authenticated() bool { return s.Token != "" }

// Reset clears every field, returning the session to a fresh guest
// state against the same backend.
func (s *Session) Reset() {
	s.Token = ""
	s.Messages = nil
	s.Conversations = nil
	s.ActiveConversation = ""
	s.Pending = nil
}

func (s *Session) appendUserTurn(text string) string {
	id := utils.NewLocalID()
	s.Messages = append(s.Messages, Message{ID: id, Role: RoleUser, Content: text})
	return id
}

func (s *Session) appendAssistantTurn(text string) {
	s.Messages = append(s.Messages, Message{ID: utils.NewLocalID(), Role: RoleAssistant, Content: text})
}

// LastAssistantID returns the ID of the most recent assistant turn, or
// "" when there is none. Used as the default feedback target.
func (s *Session) LastAssistantID() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleAssistant {
			return s.Messages[i].ID
		}
	}
	return ""
}

func messagesFromRecords(records []gateway.MessageRecord) []Message {
	msgs := make([]Message, 0, len(records))
	for _, rec := range records {
		msgs = append(msgs, Message{ID: rec.ID, Role: rec.Role, Content: rec.Content})
	}
	return msgs
}
