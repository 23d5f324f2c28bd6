// Package whatsapp exposes a WhatsApp account as a text messaging channel.
package whatsapp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"golang.org/x/time/rate"
	"google.golang.org/protobuf/proto"

	"assistente-financeiro/config"
	"assistente-financeiro/domain"
	"assistente-financeiro/logger"
)

const (
	sendAttempts   = 3
	sendRetryDelay = 500 * time.Millisecond
)

var ErrNotConnected = errors.New("whatsapp não conectado")

type sendFunc func(ctx context.Context, to types.JID, text string) error

// Channel is safe for concurrent use. Start must run before Send succeeds.
type Channel struct {
	cfg     config.WhatsAppConfig
	logger  *slog.Logger
	limiter *rate.Limiter

	mu      sync.RWMutex
	client  *whatsmeow.Client
	handler func(ctx context.Context, msg domain.IncomingMessage)
	ready   bool
	qrCode  string
	baseCtx context.Context

	send sendFunc
}

func New(cfg config.WhatsAppConfig, l *slog.Logger) *Channel {
	c := &Channel{
		cfg:     cfg,
		logger:  l.With("component", "whatsapp"),
		limiter: rate.NewLimiter(rate.Every(cfg.SendInterval), max(cfg.SendBurst, 1)),
		baseCtx: context.Background(),
	}
	c.send = c.sendViaClient
	return c
}

func (c *Channel) OnReceive(handler func(ctx context.Context, msg domain.IncomingMessage)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = handler
}

// Start opens the session store, logs in (printing a QR code for new
// devices) and keeps the connection until ctx is cancelled.
func (c *Channel) Start(ctx context.Context) error {
	if dir := filepath.Dir(c.cfg.SessionDBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("falha ao criar diretório da sessão: %w", err)
		}
	}

	container, err := sqlstore.New(ctx, "sqlite3", "file:"+c.cfg.SessionDBPath+"?_foreign_keys=on", logger.WhatsApp(c.logger, "Database"))
	if err != nil {
		return fmt.Errorf("falha ao abrir sessão do WhatsApp: %w", err)
	}
	defer container.Close()

	device, err := container.GetFirstDevice(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		device = container.NewDevice()
	} else if err != nil {
		return fmt.Errorf("falha ao carregar dispositivo: %w", err)
	}

	client := whatsmeow.NewClient(device, logger.WhatsApp(c.logger, "Client"))
	client.AddEventHandler(c.handleEvent)

	c.mu.Lock()
	c.client = client
	c.baseCtx = ctx
	c.mu.Unlock()

	if client.Store.ID == nil {
		qrChan, err := client.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("falha ao obter QR code: %w", err)
		}
		go c.watchQR(qrChan)
	}

	if err := c.connectWithRetry(ctx, client); err != nil {
		return fmt.Errorf("falha ao conectar ao WhatsApp: %w", err)
	}

	<-ctx.Done()
	c.logger.Info("disconnecting")
	client.Disconnect()
	c.setReady(false)
	return nil
}

func (c *Channel) connectWithRetry(ctx context.Context, client *whatsmeow.Client) error {
	attempts := max(c.cfg.MaxConnAttempts, 1)
	var err error
	for i := 0; i < attempts; i++ {
		if client.IsConnected() {
			return nil
		}
		if err = client.Connect(); err == nil {
			return nil
		}
		c.logger.Warn("connection attempt failed", "attempt", i+1, "error", err)
		select {
		case <-time.After(c.cfg.ReconnectDelay + time.Duration(i)*250*time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (c *Channel) watchQR(qrChan <-chan whatsmeow.QRChannelItem) {
	for evt := range qrChan {
		switch evt.Event {
		case whatsmeow.QRChannelEventCode:
			c.mu.Lock()
			c.qrCode = evt.Code
			c.mu.Unlock()
			c.logger.Info("QR code received, scan it with WhatsApp")
			if c.cfg.PrintQR {
				qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
			}
		case whatsmeow.QRChannelSuccess.Event:
			c.clearQR()
			c.logger.Info("QR code accepted")
		default:
			c.clearQR()
			c.logger.Warn("QR login ended", "event", evt.Event, "error", evt.Error)
		}
	}
}

func (c *Channel) handleEvent(evt any) {
	switch v := evt.(type) {
	case *events.Connected:
		c.setReady(true)
		c.clearQR()
		c.logger.Info("connected")
	case *events.Disconnected:
		c.setReady(false)
		c.logger.Warn("disconnected")
	case *events.LoggedOut:
		c.setReady(false)
		c.logger.Error("logged out", "reason", v.Reason.String())
	case *events.Message:
		msg, ok := toIncoming(v)
		if !ok {
			return
		}
		c.mu.RLock()
		handler, ctx := c.handler, c.baseCtx
		c.mu.RUnlock()
		if handler == nil {
			return
		}
		// whatsmeow dispatches events serially; replies may wait on the model.
		go handler(ctx, msg)
	}
}

// Send delivers text to a JID such as "5511999999999@s.whatsapp.net",
// rate limited and retried with backoff.
func (c *Channel) Send(ctx context.Context, recipient, text string) error {
	to, err := types.ParseJID(recipient)
	if err != nil {
		return &domain.UpstreamServiceError{Service: "whatsapp", Err: fmt.Errorf("destinatário inválido %q: %w", recipient, err)}
	}

	delay := sendRetryDelay
	for attempt := 1; ; attempt++ {
		if err = c.limiter.Wait(ctx); err != nil {
			break
		}
		if err = c.send(ctx, to, text); err == nil || errors.Is(err, ErrNotConnected) || attempt == sendAttempts {
			break
		}
		c.logger.Warn("send failed, retrying", "attempt", attempt, "error", err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			err = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
		delay *= 2
	}
	if err != nil {
		return &domain.UpstreamServiceError{Service: "whatsapp", Err: err}
	}
	return nil
}

func (c *Channel) sendViaClient(ctx context.Context, to types.JID, text string) error {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()
	if client == nil || !client.IsConnected() {
		return ErrNotConnected
	}
	_, err := client.SendMessage(ctx, to, &waE2E.Message{Conversation: proto.String(text)})
	return err
}

func (c *Channel) Status() domain.ChannelStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.ChannelStatus{
		Enabled:   true,
		Ready:     c.ready,
		HasQRCode: c.qrCode != "",
		QRCode:    c.qrCode,
	}
}

func (c *Channel) setReady(ready bool) {
	c.mu.Lock()
	c.ready = ready
	c.mu.Unlock()
}

func (c *Channel) clearQR() {
	c.mu.Lock()
	c.qrCode = ""
	c.mu.Unlock()
}
