package content

// Rendered is the closed set of renderer outputs. Dispatch over the open
// content_type tag space always lands on exactly one variant; unknown tags
// take the Fallback arm and empty payloads take Nothing.
type Rendered interface {
	rendered()
}

// ArticleList is a titled list of linked articles.
type ArticleList struct {
	Title string
	Items []ArticleItem
}

// CardList is a horizontally scrollable card group.
type CardList struct {
	Title       string
	Description string
	Cards       []CardItem
}

// FormView is an inline form awaiting user input.
type FormView struct {
	Title       string
	Description string
	Form        FormData
}

// QuickReplies is a row of selectable canned responses.
type QuickReplies struct {
	Options []CannedResponseItem
}

// Fallback displays plain text in place of content that cannot be rendered.
type Fallback struct {
	Text string
}

// Nothing renders no block at all (missing or empty payloads).
type Nothing struct{}

func (ArticleList) rendered()  {}
func (CardList) rendered()     {}
func (FormView) rendered()     {}
func (QuickReplies) rendered() {}
func (Fallback) rendered()     {}
func (Nothing) rendered()      {}

const noOptionsText = "No response options available"

// Render maps an interactive payload to its renderer output. It never fails:
// malformed attributes degrade to Nothing or Fallback per content type.
func Render(ic Interactive) Rendered {
	switch ic.ContentType {
	case TypeArticle:
		items, ok := ic.Articles()
		if !ok || len(items) == 0 {
			return Nothing{}
		}
		return ArticleList{Title: ic.Content, Items: items}

	case TypeCard:
		data, ok := ic.Cards()
		if !ok || len(data.Cards) == 0 {
			return Nothing{}
		}
		title := data.Title
		if title == "" {
			title = ic.Content
		}
		return CardList{Title: title, Description: data.Description, Cards: data.Cards}

	case TypeForm:
		data, ok := ic.Form()
		if !ok || len(data.Fields) == 0 {
			return Nothing{}
		}
		title := data.Title
		if title == "" {
			title = ic.Content
		}
		return FormView{Title: title, Description: data.Description, Form: data}

	case TypeCannedResponse, TypeQuickReply:
		data, ok := ic.CannedResponses()
		if !ok || len(data.Responses) == 0 {
			return Fallback{Text: noOptionsText}
		}
		return QuickReplies{Options: data.Responses}

	default:
		return Fallback{Text: "Interactive content: " + ic.Content}
	}
}
