package whatsapp

import (
	"strings"

	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"assistente-financeiro/domain"
)

// toIncoming keeps only private text messages from other people.
func toIncoming(evt *events.Message) (domain.IncomingMessage, bool) {
	if evt == nil || evt.Info.IsFromMe || evt.Info.IsGroup {
		return domain.IncomingMessage{}, false
	}
	if evt.Info.Chat.Server == types.BroadcastServer || evt.Info.Chat.Server == types.GroupServer {
		return domain.IncomingMessage{}, false
	}

	text := strings.TrimSpace(messageText(evt.Message))
	if text == "" {
		return domain.IncomingMessage{}, false
	}

	return domain.IncomingMessage{
		ID:        evt.Info.ID,
		Sender:    evt.Info.Sender.String(),
		Chat:      evt.Info.Chat.String(),
		Text:      text,
		Timestamp: evt.Info.Timestamp,
	}, true
}

func messageText(m *waE2E.Message) string {
	switch {
	case m == nil:
		return ""
	case m.GetConversation() != "":
		return m.GetConversation()
	case m.GetExtendedTextMessage().GetText() != "":
		return m.GetExtendedTextMessage().GetText()
	default:
		return ""
	}
}
