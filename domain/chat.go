package domain

import "time"

// IncomingMessage is a private text message received from the messaging channel.
type IncomingMessage struct {
	ID        string
	Sender    string
	Chat      string
	Text      string
	Timestamp time.Time
}

type ChannelStatus struct {
	Enabled   bool   `json:"enabled"`
	Ready     bool   `json:"ready"`
	HasQRCode bool   `json:"has_qr_code"`
	QRCode    string `json:"qr_code,omitempty"`
}
