package service

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"assistente-financeiro/domain"
	"assistente-financeiro/metrics"
)

// MessageChannel is a text messaging transport.
type MessageChannel interface {
	Send(ctx context.Context, recipient, text string) error
	OnReceive(handler func(ctx context.Context, msg domain.IncomingMessage))
}

// Bot answers every incoming message through the ChatService.
type Bot struct {
	channel      MessageChannel
	chat         *ChatService
	metrics      *metrics.Metrics
	logger       *slog.Logger
	replyTimeout time.Duration
}

func NewBot(channel MessageChannel, chat *ChatService, m *metrics.Metrics, logger *slog.Logger, replyTimeout time.Duration) *Bot {
	b := &Bot{
		channel:      channel,
		chat:         chat,
		metrics:      m,
		logger:       logger.With("component", "bot"),
		replyTimeout: replyTimeout,
	}
	channel.OnReceive(b.handle)
	return b
}

func (b *Bot) handle(ctx context.Context, msg domain.IncomingMessage) {
	defer b.recoverReply(ctx, msg)

	b.metrics.ObserveMessage("recebida", nil)
	b.logger.Info("message received", "sender", msg.Sender, "length", len(msg.Text))

	if b.replyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.replyTimeout)
		defer cancel()
	}

	reply := b.chat.Reply(ctx, msg.Text)
	err := b.channel.Send(ctx, msg.Chat, reply)
	b.metrics.ObserveMessage("enviada", err)
	if err != nil {
		b.logger.Error("failed to send reply", "chat", msg.Chat, "error", err)
	}
}

// recoverReply keeps a panic in one conversation from taking down the channel.
func (b *Bot) recoverReply(ctx context.Context, msg domain.IncomingMessage) {
	r := recover()
	if r == nil {
		return
	}
	b.logger.Error("panic while handling message", "chat", msg.Chat, "panic", r, "stack", string(debug.Stack()))

	err := b.channel.Send(ctx, msg.Chat, msgInternalError)
	b.metrics.ObserveMessage("enviada", err)
	if err != nil {
		b.logger.Error("failed to send reply", "chat", msg.Chat, "error", err)
	}
}
