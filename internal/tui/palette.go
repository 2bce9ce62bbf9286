package tui

import "strings"

// commandSpec describes one slash command for the palette listing.
type commandSpec struct {
	Name        string
	Usage       string
	Description string
}

var commandCatalog = []commandSpec{
	{Name: "login", Usage: "/login [email password]", Description: "sign in to the backend"},
	{Name: "register", Usage: "/register [email password]", Description: "create an account"},
	{Name: "logout", Usage: "/logout", Description: "sign out and reset the session"},
	{Name: "new", Usage: "/new", Description: "start a new conversation"},
	{Name: "conversations", Usage: "/conversations", Description: "open the conversation sidebar"},
	{Name: "delete", Usage: "/delete [id]", Description: "delete a conversation"},
	{Name: "feedback", Usage: "/feedback <+1|-1> [message-id]", Description: "rate an answer"},
	{Name: "retry", Usage: "/retry", Description: "retry the failed question"},
	{Name: "backend", Usage: "/backend <url>", Description: "point at another backend"},
	{Name: "help", Usage: "/help", Description: "toggle the full key listing"},
	{Name: "quit", Usage: "/quit", Description: "exit"},
}

func (m *model) updateCommandResults() {
	query := strings.ToLower(strings.TrimLeft(strings.TrimSpace(m.commandInput.Value()), "/:"))
	if i := strings.IndexByte(query, ' '); i >= 0 {
		query = query[:i]
	}
	results := make([]commandSpec, 0, len(commandCatalog))
	for _, cmd := range commandCatalog {
		if query == "" || strings.HasPrefix(cmd.Name, query) {
			results = append(results, cmd)
		}
	}
	m.commandResults = results
	if m.commandIndex >= len(results) {
		m.commandIndex = 0
	}
}
