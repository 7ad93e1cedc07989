package server

import (
	"time"

	"github.com/stackmint/chatwidget/internal/content"
	"github.com/stackmint/chatwidget/internal/conversation"
)

// messageView is the wire shape of one transcript entry. Interactive
// messages carry a pre-dispatched block so the page never has to interpret
// content_type itself.
type messageView struct {
	ID        string     `json:"id"`
	Role      string     `json:"role"`
	Text      string     `json:"text,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
	Block     *blockView `json:"block,omitempty"`
}

type blockView struct {
	Kind        string                       `json:"kind"`
	Title       string                       `json:"title,omitempty"`
	Description string                       `json:"description,omitempty"`
	Text        string                       `json:"text,omitempty"`
	Items       []content.ArticleItem        `json:"items,omitempty"`
	Cards       []content.CardItem           `json:"cards,omitempty"`
	Form        *content.FormData            `json:"form,omitempty"`
	Options     []content.CannedResponseItem `json:"options,omitempty"`
}

func viewOf(m conversation.Message) messageView {
	v := messageView{
		ID:        m.ID,
		Role:      m.Role,
		Text:      m.Text,
		Timestamp: m.Timestamp,
	}
	if m.Interactive == nil {
		return v
	}

	switch r := content.Render(*m.Interactive).(type) {
	case content.ArticleList:
		v.Block = &blockView{Kind: "articles", Title: r.Title, Items: r.Items}
	case content.CardList:
		v.Block = &blockView{Kind: "cards", Title: r.Title, Description: r.Description, Cards: r.Cards}
	case content.FormView:
		f := r.Form
		v.Block = &blockView{Kind: "form", Title: r.Title, Description: r.Description, Form: &f}
	case content.QuickReplies:
		v.Block = &blockView{Kind: "quick_replies", Options: r.Options}
	case content.Fallback:
		v.Block = &blockView{Kind: "fallback", Text: r.Text}
	case content.Nothing:
		// Render no block at all.
	}
	return v
}
