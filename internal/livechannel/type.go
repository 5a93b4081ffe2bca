package livechannel

import (
	"encoding/json"
	"time"
)

// State is the connection state of the live channel.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Config holds transport settings for the live channel.
type Config struct {
	URL             string
	PingInterval    time.Duration
	PongWait        time.Duration
	WriteWait       time.Duration
	MaxMessageSize  int64
	HandshakeWait   time.Duration
	RedialBaseDelay time.Duration
	RedialMaxDelay  time.Duration
}

// Frame is one message received over the live channel.
type Frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// FrameTypeNotification is the only frame kind this layer consumes.
const FrameTypeNotification = "notification"
