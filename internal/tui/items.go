package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"taxchat/internal/gateway"
)

type conversationItem struct {
	data gateway.ConversationSummary
}

func (i conversationItem) Title() string {
	if strings.TrimSpace(i.data.Title) == "" {
		return "(untitled)"
	}
	return i.data.Title
}

func (i conversationItem) Description() string { return i.data.ID }
func (i conversationItem) FilterValue() string { return i.data.Title + " " + i.data.ID }

func buildConversationItems(in []gateway.ConversationSummary) []list.Item {
	items := make([]list.Item, 0, len(in))
	for _, summary := range in {
		items = append(items, conversationItem{data: summary})
	}
	return items
}

func newListModel() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowHelp(false)
	return l
}

func previewText(text string, limit int) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
