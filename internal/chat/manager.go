// Package chat keeps the local transcript consistent with
// backend-persisted history across guest and authenticated modes. All
// session mutations go through Manager handlers; the gateway client
// never touches session state itself.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"taxchat/internal/gateway"
	"taxchat/internal/utils"
)

var (
	// ErrEmptyQuestion rejects blank input before any network call.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrBusy enforces the one-outstanding-question invariant.
	ErrBusy = errors.New("a question is already pending")

	// ErrNothingPending means Dispatch or Retry was called with no
	// armed question.
	ErrNothingPending = errors.New("no pending question")
)

// Manager owns the session and drives it through the gateway. Methods
// are safe for use from bubbletea command goroutines; Snapshot gives
// the render loop a consistent copy.
type Manager struct {
	mu      sync.Mutex
	client  *gateway.Client
	session *Session
	logger  *utils.Logger
}

func NewManager(client *gateway.Client, logger *utils.Logger) *Manager {
	return &Manager{
		client:  client,
		session: NewSession(),
		logger:  logger,
	}
}

func (m *Manager) Client() *gateway.Client { return m.client }

// Snapshot returns a copy of the session for rendering. Slices are
// copied so the render loop never aliases state a handler may mutate.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := *m.session
	snap.Messages = append([]Message(nil), m.session.Messages...)
	snap.Conversations = append([]gateway.ConversationSummary(nil), m.session.Conversations...)
	if m.session.Pending != nil {
		pending := *m.session.Pending
		snap.Pending = &pending
	}
	return snap
}

// Submit validates and records a question locally, arming the pending
// slot. No network I/O happens here; callers follow up with Dispatch.
// A previously failed question is abandoned (its user turn stays in
// the transcript, unanswered) when a new one is submitted.
func (m *Manager) Submit(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyQuestion
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p := m.session.Pending; p != nil && !p.Failed {
		return ErrBusy
	}
	id := m.session.appendUserTurn(text)
	m.session.Pending = &Pending{MessageID: id, Question: text}
	return nil
}

// Dispatch sends the armed question to the backend and reconciles.
//
// Authenticated: the returned conversation ID is adopted, the full
// transcript is re-fetched (backend is the source of truth) and the
// sidebar list refreshed. Guest: the answer is appended locally with a
// fresh placeholder ID and the conversation ID is never adopted. On
// failure the transcript keeps the dangling user turn and the pending
// slot moves to a visible failed state for Retry.
//
// The mutex is released for the round trip, so the session may have
// been reset or replaced (logout, new conversation) by the time the
// answer arrives. The result only applies while the pending slot still
// holds the question that was dispatched; otherwise it is dropped.
func (m *Manager) Dispatch(ctx context.Context) error {
	m.mu.Lock()
	p := m.session.Pending
	if p == nil {
		m.mu.Unlock()
		return ErrNothingPending
	}
	question := p.Question
	var convID *string
	if m.session.ActiveConversation != "" {
		id := m.session.ActiveConversation
		convID = &id
	}
	m.mu.Unlock()

	resp, err := m.client.Ask(ctx, question, convID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Pending != p {
		m.logger.Infof("dropping answer for superseded question %q", question)
		return nil
	}
	if err != nil {
		p.Failed = true
		p.Notice = gateway.Notice(err)
		return err
	}

	if m.session.Authenticated() {
		m.session.ActiveConversation = resp.ConversationID
		m.reconcileLocked(ctx, resp.Answer)
	} else {
		m.session.appendAssistantTurn(resp.Answer)
	}
	m.session.Pending = nil
	return nil
}

// reconcileLocked replaces the local transcript with the backend's
// authoritative version and refreshes the conversation list. Both
// fetches are best-effort: a failure after a successful /ask must not
// lose the answer, so the local append is the fallback.
func (m *Manager) reconcileLocked(ctx context.Context, answer string) {
	records, err := m.client.GetConversation(ctx, m.session.ActiveConversation)
	if err != nil {
		m.logger.Warnf("transcript re-fetch failed, keeping local copy: %v", err)
		m.session.appendAssistantTurn(answer)
	} else {
		m.session.Messages = messagesFromRecords(records)
	}
	list, err := m.client.ListConversations(ctx)
	if err != nil {
		m.logger.Warnf("conversation list refresh failed: %v", err)
		return
	}
	m.session.Conversations = list
}

// Retry re-dispatches a failed question without appending a duplicate
// user turn.
func (m *Manager) Retry(ctx context.Context) error {
	m.mu.Lock()
	p := m.session.Pending
	if p == nil || !p.Failed {
		m.mu.Unlock()
		return ErrNothingPending
	}
	p.Failed = false
	p.Notice = ""
	m.mu.Unlock()
	return m.Dispatch(ctx)
}

// Login stores the returned token; every later gateway call carries it
// as a bearer header. The sidebar list is fetched eagerly so the user
// sees their history right away; a guest transcript already on screen
// is left alone and stays unpersisted.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	tok, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.session.Token = tok.AccessToken
	m.client.SetToken(tok.AccessToken)
	m.mu.Unlock()

	if err := m.RefreshConversations(ctx); err != nil {
		m.logger.Warnf("conversation list fetch after login failed: %v", err)
	}
	return nil
}

// Register creates an account. It does not authenticate.
func (m *Manager) Register(ctx context.Context, email, password string) error {
	return m.client.Register(ctx, email, password)
}

// Logout clears every session field except the configured backend URL,
// leaving a fresh guest session against the same backend.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client.ClearToken()
	m.session.Reset()
}

// NewConversation clears the active conversation and transcript
// without contacting the backend; the next dispatched question creates
// a server-side conversation implicitly.
func (m *Manager) NewConversation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.ActiveConversation = ""
	m.session.Messages = nil
	m.session.Pending = nil
}

// SelectConversation fetches the conversation's transcript and
// replaces local state wholesale.
func (m *Manager) SelectConversation(ctx context.Context, id string) error {
	records, err := m.client.GetConversation(ctx, id)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.ActiveConversation = id
	m.session.Messages = messagesFromRecords(records)
	m.session.Pending = nil
	return nil
}

// DeleteConversation removes a conversation server-side and refreshes
// the list. Deleting the active conversation also clears the local
// transcript; deleting another leaves the active transcript untouched.
func (m *Manager) DeleteConversation(ctx context.Context, id string) error {
	if err := m.client.DeleteConversation(ctx, id); err != nil {
		return err
	}
	m.mu.Lock()
	if id == m.session.ActiveConversation {
		m.session.ActiveConversation = ""
		m.session.Messages = nil
		m.session.Pending = nil
	}
	m.mu.Unlock()
	return m.RefreshConversations(ctx)
}

// RefreshConversations reloads the sidebar list.
func (m *Manager) RefreshConversations(ctx context.Context) error {
	list, err := m.client.ListConversations(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Conversations = list
	return nil
}

// SendFeedback rates a message. No local state changes; the caller
// shows an acknowledgment.
func (m *Manager) SendFeedback(ctx context.Context, messageID string, rating int) error {
	return m.client.SendFeedback(ctx, messageID, rating)
}

// LastAssistantID exposes the default feedback target.
func (m *Manager) LastAssistantID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.LastAssistantID()
}

// Adopt installs a pre-existing token, e.g. from TAXCHAT_TOKEN, so
// one-shot CLI commands can run authenticated without a login round
// trip.
func (m *Manager) Adopt(token string) {
	if token == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Token = token
	m.client.SetToken(token)
}
