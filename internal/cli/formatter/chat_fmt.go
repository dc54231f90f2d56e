package formatter

import (
	"strings"

	"github.com/alexanderramin/planboard/internal/service"
)

// FormatMessage renders one chat line with a sender prefix.
func FormatMessage(m service.Message) string {
	if m.From == service.SenderUser {
		return StyleBlue.Render("you ❯ ") + m.Content
	}
	return StylePurple.Render("bot ❯ ") + StyleFg.Render(m.Content)
}

// FormatConversation renders messages from index from onwards.
func FormatConversation(msgs []service.Message, from int) string {
	var b strings.Builder
	for i := from; i < len(msgs); i++ {
		b.WriteString(FormatMessage(msgs[i]))
		b.WriteString("\n")
	}
	return b.String()
}
