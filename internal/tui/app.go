package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"taxchat/internal/chat"
	"taxchat/internal/config"
	"taxchat/internal/gateway"
	"taxchat/internal/utils"
)

const (
	authFieldEmail = iota
	authFieldPassword
)

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	noticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	botStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	inputBackground = lipgloss.AdaptiveColor{Light: "252", Dark: "236"}
	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Background(inputBackground)
)

type model struct {
	cfg     config.Config
	logger  *utils.Logger
	manager *chat.Manager
	session chat.Session // latest snapshot, refreshed after every handler

	width  int
	height int

	input      textarea.Model
	transcript viewport.Model
	convList   list.Model
	spinner    spinner.Model
	keys       keyMap
	help       help.Model
	renderer   *glamour.TermRenderer

	showSidebar  bool
	focusSidebar bool

	commandMode    bool
	commandInput   textinput.Model
	commandResults []commandSpec
	commandIndex   int

	authMode      bool // login/register modal open
	registerMode  bool // modal submits /register instead of /login
	emailInput    textinput.Model
	passwordInput textinput.Model
	authFocus     int

	asking  bool // one outstanding ask round trip
	working bool // any other gateway call in flight
	notice  string
	failed  bool // notice is an error
	email   string
}

type askDoneMsg struct{ err error }

type loginDoneMsg struct {
	email string
	err   error
}

type registerDoneMsg struct{ err error }

type conversationsMsg struct{ err error }

type selectDoneMsg struct {
	id  string
	err error
}

type deleteDoneMsg struct {
	id  string
	err error
}

type feedbackDoneMsg struct {
	rating int
	err    error
}

func Run(cfg config.Config, manager *chat.Manager, logger *utils.Logger) error {
	input := textarea.New()
	input.Placeholder = "Ask a tax question..."
	input.Prompt = ""
	input.ShowLineNumbers = false
	input.SetHeight(3)
	input.Focus()
	input.FocusedStyle.Base = input.FocusedStyle.Base.Background(inputBackground)
	input.BlurredStyle.Base = input.BlurredStyle.Base.Background(inputBackground)
	input.FocusedStyle.CursorLine = input.FocusedStyle.CursorLine.Background(inputBackground)
	input.BlurredStyle.CursorLine = input.BlurredStyle.CursorLine.Background(inputBackground)

	commandInput := textinput.New()
	commandInput.Placeholder = "command"
	commandInput.Prompt = "/ "

	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.Width = 40
	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword

	spin := spinner.New()
	spin.Spinner = spinner.Line
	spin.Style = dimStyle

	m := model{
		cfg:           cfg,
		logger:        logger,
		manager:       manager,
		session:       manager.Snapshot(),
		input:         input,
		transcript:    viewport.New(0, 0),
		convList:      newListModel(),
		spinner:       spin,
		keys:          defaultKeyMap,
		help:          help.New(),
		commandInput:  commandInput,
		emailInput:    emailInput,
		passwordInput: passwordInput,
	}
	m.syncTranscript()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderer = newRenderer(m.transcriptWidth())
		m.layout()
		m.syncTranscript()
		return m, nil

	case spinner.TickMsg:
		if m.asking || m.working {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.syncTranscript()
			return m, cmd
		}
		return m, nil

	case askDoneMsg:
		m.asking = false
		m.refresh()
		if msg.err != nil {
			m.setError(gateway.Notice(msg.err))
		} else {
			m.clearNotice()
		}
		m.syncTranscript()
		m.transcript.GotoBottom()
		return m, nil

	case loginDoneMsg:
		m.working = false
		m.refresh()
		if msg.err != nil {
			m.setError(gateway.Notice(msg.err))
			return m, nil
		}
		m.email = msg.email
		m.setNotice("Signed in as " + msg.email + ".")
		return m, nil

	case registerDoneMsg:
		m.working = false
		if msg.err != nil {
			m.setError(gateway.Notice(msg.err))
			return m, nil
		}
		m.setNotice("Account created. Use /login to sign in.")
		return m, nil

	case conversationsMsg:
		m.working = false
		m.refresh()
		if msg.err != nil {
			m.setError(gateway.Notice(msg.err))
		}
		return m, nil

	case selectDoneMsg:
		m.working = false
		m.refresh()
		if msg.err != nil {
			m.setError(gateway.Notice(msg.err))
			return m, nil
		}
		m.clearNotice()
		m.focusSidebar = false
		m.input.Focus()
		m.syncTranscript()
		m.transcript.GotoBottom()
		return m, nil

	case deleteDoneMsg:
		m.working = false
		m.refresh()
		if msg.err != nil {
			m.setError(gateway.Notice(msg.err))
			return m, nil
		}
		m.setNotice("Conversation deleted.")
		m.syncTranscript()
		return m, nil

	case feedbackDoneMsg:
		m.working = false
		if msg.err != nil {
			m.setError(gateway.Notice(msg.err))
			return m, nil
		}
		if msg.rating > 0 {
			m.setNotice("Thanks for the feedback.")
		} else {
			m.setNotice("Feedback recorded. Sorry the answer missed.")
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Type == tea.MouseWheelUp || msg.Type == tea.MouseWheelDown {
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.authMode {
		return m.updateAuth(msg)
	}
	if m.commandMode {
		return m.updateCommand(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Command):
		m.openCommandPalette()
		return m, nil
	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = !m.showSidebar
		m.focusSidebar = m.showSidebar
		if m.focusSidebar {
			m.input.Blur()
		} else {
			m.input.Focus()
		}
		m.layout()
		m.syncTranscript()
		if m.showSidebar && m.session.Authenticated() && !m.working {
			m.working = true
			return m, tea.Batch(m.spinner.Tick, refreshCmd(m.manager))
		}
		return m, nil
	case key.Matches(msg, m.keys.NewConv):
		m.manager.NewConversation()
		m.refresh()
		m.clearNotice()
		m.syncTranscript()
		return m, nil
	case key.Matches(msg, m.keys.Retry):
		return m.startRetry()
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}

	if m.focusSidebar {
		return m.updateSidebar(msg)
	}

	if msg.String() == "enter" {
		return m.startAsk(m.input.Value())
	}
	if msg.String() == "shift+enter" {
		m.input.InsertString("\n")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" && m.convList.FilterState() != list.Filtering {
		if item, ok := m.convList.SelectedItem().(conversationItem); ok {
			return m.startSelect(item.data.ID)
		}
		return m, nil
	}
	if msg.String() == "d" && m.convList.FilterState() != list.Filtering {
		if item, ok := m.convList.SelectedItem().(conversationItem); ok {
			return m.startDelete(item.data.ID)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.convList, cmd = m.convList.Update(msg)
	return m, cmd
}

func (m model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeAuthModal()
		return m, nil
	case "tab", "shift+tab", "up", "down":
		if m.authFocus == authFieldEmail {
			m.authFocus = authFieldPassword
			m.emailInput.Blur()
			m.passwordInput.Focus()
		} else {
			m.authFocus = authFieldEmail
			m.passwordInput.Blur()
			m.emailInput.Focus()
		}
		return m, nil
	case "enter":
		if m.authFocus == authFieldEmail {
			m.authFocus = authFieldPassword
			m.emailInput.Blur()
			m.passwordInput.Focus()
			return m, nil
		}
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.setError("Email and password are required.")
			return m, nil
		}
		register := m.registerMode
		m.closeAuthModal()
		m.working = true
		if register {
			return m, tea.Batch(m.spinner.Tick, registerCmd(m.manager, email, password))
		}
		return m, tea.Batch(m.spinner.Tick, loginCmd(m.manager, email, password))
	}

	var cmd tea.Cmd
	if m.authFocus == authFieldEmail {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeCommandPalette()
		return m, nil
	case "enter":
		cmdText := strings.TrimSpace(m.commandInput.Value())
		if len(m.commandResults) > 0 && !strings.Contains(cmdText, " ") {
			cmdText = "/" + m.commandResults[m.commandIndex].Name
		}
		m.closeCommandPalette()
		if cmdText == "" {
			return m, nil
		}
		return m.applyCommand(cmdText)
	case "up":
		if m.commandIndex > 0 {
			m.commandIndex--
		}
		return m, nil
	case "down":
		if m.commandIndex < len(m.commandResults)-1 {
			m.commandIndex++
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.updateCommandResults()
	return m, cmd
}

func (m *model) openCommandPalette() {
	m.commandMode = true
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.commandIndex = 0
	m.input.Blur()
	m.updateCommandResults()
}

func (m *model) closeCommandPalette() {
	m.commandMode = false
	m.commandInput.Blur()
	m.commandInput.SetValue("")
	m.commandIndex = 0
	if !m.focusSidebar {
		m.input.Focus()
	}
}

func (m *model) openAuthModal(register bool) {
	m.authMode = true
	m.registerMode = register
	m.authFocus = authFieldEmail
	m.emailInput.SetValue("")
	m.passwordInput.SetValue("")
	m.emailInput.Focus()
	m.passwordInput.Blur()
	m.input.Blur()
}

func (m *model) closeAuthModal() {
	m.authMode = false
	m.registerMode = false
	m.emailInput.Blur()
	m.passwordInput.Blur()
	if !m.focusSidebar {
		m.input.Focus()
	}
}

func (m model) startAsk(text string) (tea.Model, tea.Cmd) {
	if m.asking || m.working {
		return m, nil
	}
	if err := m.manager.Submit(text); err != nil {
		switch err {
		case chat.ErrEmptyQuestion:
			m.setError("Question must not be empty.")
		case chat.ErrBusy:
			m.setError("Still waiting for the previous answer.")
		default:
			m.setError(err.Error())
		}
		return m, nil
	}
	m.input.SetValue("")
	m.input.CursorEnd()
	m.asking = true
	m.clearNotice()
	m.refresh()
	m.syncTranscript()
	m.transcript.GotoBottom()
	return m, tea.Batch(m.spinner.Tick, askCmd(m.manager))
}

func (m model) startRetry() (tea.Model, tea.Cmd) {
	if m.asking || m.working {
		return m, nil
	}
	snap := m.manager.Snapshot()
	if snap.Pending == nil || !snap.Pending.Failed {
		m.setError("Nothing to retry.")
		return m, nil
	}
	m.asking = true
	m.clearNotice()
	m.syncTranscript()
	return m, tea.Batch(m.spinner.Tick, retryCmd(m.manager))
}

func (m model) startSelect(id string) (tea.Model, tea.Cmd) {
	if m.asking || m.working {
		return m, nil
	}
	m.working = true
	return m, tea.Batch(m.spinner.Tick, selectCmd(m.manager, id))
}

func (m model) startDelete(id string) (tea.Model, tea.Cmd) {
	if m.asking || m.working {
		return m, nil
	}
	m.working = true
	return m, tea.Batch(m.spinner.Tick, deleteCmd(m.manager, id))
}

func (m model) applyCommand(input string) (tea.Model, tea.Cmd) {
	parts := splitArgs(input)
	if len(parts) == 0 {
		return m, nil
	}
	command := strings.TrimLeft(parts[0], "/:")
	if command == "q" {
		command = "quit"
	}
	switch strings.ToLower(command) {
	case "login":
		if len(parts) >= 3 {
			m.working = true
			return m, tea.Batch(m.spinner.Tick, loginCmd(m.manager, parts[1], parts[2]))
		}
		m.openAuthModal(false)
		return m, nil
	case "register":
		if len(parts) >= 3 {
			m.working = true
			return m, tea.Batch(m.spinner.Tick, registerCmd(m.manager, parts[1], parts[2]))
		}
		m.openAuthModal(true)
		return m, nil
	case "logout":
		m.manager.Logout()
		m.email = ""
		m.refresh()
		m.setNotice("Signed out. You are browsing as a guest.")
		m.syncTranscript()
		return m, nil
	case "new":
		m.manager.NewConversation()
		m.refresh()
		m.clearNotice()
		m.syncTranscript()
		return m, nil
	case "conversations":
		m.showSidebar = true
		m.focusSidebar = true
		m.input.Blur()
		m.layout()
		m.syncTranscript()
		if m.session.Authenticated() {
			m.working = true
			return m, tea.Batch(m.spinner.Tick, refreshCmd(m.manager))
		}
		m.setError("Sign in to see saved conversations.")
		return m, nil
	case "delete":
		id := m.session.ActiveConversation
		if len(parts) >= 2 {
			id = parts[1]
		}
		if id == "" {
			m.setError("No conversation selected.")
			return m, nil
		}
		return m.startDelete(id)
	case "feedback":
		if len(parts) < 2 {
			m.setError("Usage: /feedback <+1|-1> [message-id]")
			return m, nil
		}
		rating, err := parseRating(parts[1])
		if err != nil {
			m.setError("Usage: /feedback <+1|-1> [message-id]")
			return m, nil
		}
		messageID := m.manager.LastAssistantID()
		if len(parts) >= 3 {
			messageID = parts[2]
		}
		if messageID == "" {
			m.setError("No answer to rate yet.")
			return m, nil
		}
		m.working = true
		return m, tea.Batch(m.spinner.Tick, feedbackCmd(m.manager, messageID, rating))
	case "retry":
		return m.startRetry()
	case "backend":
		if len(parts) < 2 {
			m.setError("Usage: /backend <url>")
			return m, nil
		}
		m.manager.Client().SetBaseURL(parts[1])
		m.setNotice("Backend set to " + m.manager.Client().BaseURL() + ".")
		return m, nil
	case "help":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case "quit", "exit":
		return m, tea.Quit
	default:
		m.setError(fmt.Sprintf("unknown command: %s", input))
		return m, nil
	}
}

func parseRating(raw string) (int, error) {
	raw = strings.TrimPrefix(raw, "+")
	rating, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if rating != 1 && rating != -1 {
		return 0, fmt.Errorf("rating out of range: %d", rating)
	}
	return rating, nil
}

func (m model) View() string {
	header := headerStyle.Render("TaxChat") + "  " + dimStyle.Render("Indonesian tax Q&A")
	statusBar := m.renderStatusBar()
	noticeLine := ""
	if m.notice != "" {
		if m.failed {
			noticeLine = errStyle.Render(m.notice)
		} else {
			noticeLine = noticeStyle.Render(m.notice)
		}
	}

	body := m.renderBody()
	inputBox := m.renderInput()
	footer := footerStyle.Render(m.help.View(m.keys))

	content := strings.Join([]string{
		header,
		statusBar,
		noticeLine,
		body,
		inputBox,
		footer,
	}, "\n")

	if m.authMode {
		return overlayModal(dimStyle.Render(content), m.renderAuthModal(), m.width, m.height)
	}
	if m.commandMode {
		return overlayModal(dimStyle.Render(content), m.renderCommandModal(), m.width, m.height)
	}
	return content
}

func (m model) renderStatusBar() string {
	parts := []string{}
	if m.asking || m.working {
		parts = append(parts, m.spinner.View())
	}
	backend := m.manager.Client().BaseURL()
	if backend == "" {
		backend = "no backend"
	}
	parts = append(parts, backend)
	if m.session.Authenticated() {
		who := "signed in"
		if m.email != "" {
			who = m.email
		}
		parts = append(parts, who)
	} else {
		parts = append(parts, "guest")
	}
	if title := m.activeTitle(); title != "" {
		parts = append(parts, previewText(title, 40))
	} else {
		parts = append(parts, "new conversation")
	}
	line := strings.Join(parts, "  ·  ")
	if m.width > 0 {
		return dimStyle.Width(m.width).Render(line)
	}
	return dimStyle.Render(line)
}

func (m model) activeTitle() string {
	if m.session.ActiveConversation == "" {
		return ""
	}
	for _, summary := range m.session.Conversations {
		if summary.ID == m.session.ActiveConversation {
			return summary.Title
		}
	}
	return m.session.ActiveConversation
}

func (m model) renderBody() string {
	if !m.showSidebar {
		return m.transcript.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.convList.View(), " ", m.transcript.View())
}

func (m model) renderInput() string {
	width, _ := m.bodySize()
	hint := "enter to ask, shift+enter for newline, esc for commands"
	return inputBoxStyle.Width(width).Render(m.input.View()) + "\n" + dimStyle.Render(hint)
}

// layout pushes the current terminal geometry into the viewport, list,
// and input so scroll math works outside of View.
func (m *model) layout() {
	width, height := m.bodySize()
	if m.showSidebar {
		sw := m.sidebarWidth()
		m.convList.SetSize(sw, height)
		m.transcript.Width = width - sw - 1
	} else {
		m.transcript.Width = width
	}
	m.transcript.Height = height
	m.input.SetWidth(width - 2)
}

func (m model) sidebarWidth() int {
	width, _ := m.bodySize()
	sw := width / 3
	if sw < 24 {
		sw = 24
	}
	if sw > width-20 {
		sw = width / 2
	}
	return sw
}

func (m model) renderCommandModal() string {
	width, height := modalSize(m.width, m.height)
	m.commandInput.Width = width - 6
	lines := []string{m.commandInput.View()}
	if len(m.commandResults) > 0 {
		lines = append(lines, "")
		for i, cmd := range m.commandResults {
			line := fmt.Sprintf("%s - %s", cmd.Usage, cmd.Description)
			if i == m.commandIndex {
				lines = append(lines, userStyle.Render("> "+line))
			} else {
				lines = append(lines, dimStyle.Render("  "+line))
			}
		}
	}
	title := headerStyle.Render("Command")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Width(width).
		MaxHeight(height).
		Render(strings.Join(append([]string{title, ""}, lines...), "\n"))
	return box
}

func (m model) renderAuthModal() string {
	width, _ := modalSize(m.width, m.height)
	if width > 60 {
		width = 60
	}
	title := "Sign in"
	action := "sign in"
	if m.registerMode {
		title = "Create account"
		action = "register"
	}
	emailIndicator := "  "
	passwordIndicator := "  "
	if m.authFocus == authFieldEmail {
		emailIndicator = "> "
	} else {
		passwordIndicator = "> "
	}
	body := strings.Join([]string{
		headerStyle.Render(title),
		"",
		emailIndicator + "Email:",
		"  " + m.emailInput.View(),
		passwordIndicator + "Password:",
		"  " + m.passwordInput.View(),
		"",
		dimStyle.Render("tab to switch, enter to " + action + ", esc to cancel"),
	}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Width(width).
		Render(body)
}

func (m model) bodySize() (int, int) {
	width := m.width
	if width <= 0 {
		width = 80
	}
	// header + status + notice + input box + hint + footer
	height := m.height - 10
	if height < 4 {
		height = 4
	}
	return width, height
}

func (m model) transcriptWidth() int {
	width, _ := m.bodySize()
	if m.showSidebar {
		width -= m.sidebarWidth() + 1
	}
	if width < 20 {
		width = 20
	}
	return width
}

func (m *model) syncTranscript() {
	width := m.transcriptWidth()
	lines := m.transcriptLines(width)
	if len(lines) == 0 {
		lines = []string{dimStyle.Render("No messages yet. Ask your first tax question below.")}
	}
	atBottom := m.transcript.AtBottom()
	m.transcript.SetContent(strings.Join(lines, "\n"))
	if atBottom || m.asking {
		m.transcript.GotoBottom()
	}
}

func (m *model) transcriptLines(wrapWidth int) []string {
	lines := make([]string, 0, len(m.session.Messages)*3)
	for _, msg := range m.session.Messages {
		switch msg.Role {
		case chat.RoleUser:
			lines = append(lines, userStyle.Render("You"))
			for _, line := range strings.Split(ansi.Wrap(msg.Content, wrapWidth-2, ""), "\n") {
				lines = append(lines, "  "+line)
			}
		case chat.RoleAssistant:
			lines = append(lines, botStyle.Render("TaxChat"))
			for _, line := range strings.Split(m.renderAnswer(msg.Content, wrapWidth-2), "\n") {
				lines = append(lines, "  "+line)
			}
		}
		lines = append(lines, "")
	}

	if p := m.session.Pending; p != nil && p.Failed {
		lines = append(lines, errStyle.Render("  Answer failed: "+p.Notice))
		lines = append(lines, dimStyle.Render("  Press ctrl+r or use /retry to try again."))
		lines = append(lines, "")
	}
	if m.asking {
		lines = append(lines, dimStyle.Render("Looking for an answer "+m.spinner.View()))
	}
	if len(lines) > 0 && strings.TrimSpace(stripANSI(lines[len(lines)-1])) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (m *model) refresh() {
	m.session = m.manager.Snapshot()
	m.convList.SetItems(buildConversationItems(m.session.Conversations))
}

func (m *model) setNotice(text string) {
	m.notice = text
	m.failed = false
}

func (m *model) setError(text string) {
	m.notice = text
	m.failed = true
}

func (m *model) clearNotice() {
	m.notice = ""
	m.failed = false
}

func askCmd(manager *chat.Manager) tea.Cmd {
	return func() tea.Msg {
		return askDoneMsg{err: manager.Dispatch(context.Background())}
	}
}

func retryCmd(manager *chat.Manager) tea.Cmd {
	return func() tea.Msg {
		return askDoneMsg{err: manager.Retry(context.Background())}
	}
}

func loginCmd(manager *chat.Manager, email, password string) tea.Cmd {
	return func() tea.Msg {
		return loginDoneMsg{email: email, err: manager.Login(context.Background(), email, password)}
	}
}

func registerCmd(manager *chat.Manager, email, password string) tea.Cmd {
	return func() tea.Msg {
		return registerDoneMsg{err: manager.Register(context.Background(), email, password)}
	}
}

func refreshCmd(manager *chat.Manager) tea.Cmd {
	return func() tea.Msg {
		return conversationsMsg{err: manager.RefreshConversations(context.Background())}
	}
}

func selectCmd(manager *chat.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		return selectDoneMsg{id: id, err: manager.SelectConversation(context.Background(), id)}
	}
}

func deleteCmd(manager *chat.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{id: id, err: manager.DeleteConversation(context.Background(), id)}
	}
}

func feedbackCmd(manager *chat.Manager, messageID string, rating int) tea.Cmd {
	return func() tea.Msg {
		return feedbackDoneMsg{rating: rating, err: manager.SendFeedback(context.Background(), messageID, rating)}
	}
}
