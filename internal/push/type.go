package push

// Config holds push channel settings.
type Config struct {
	// ChannelPrefix prefixes the broker channel a device token listens on.
	ChannelPrefix string
	// HeartbeatKey is the broker key the background worker keeps alive.
	HeartbeatKey string
	// PermissionPrompt is the platform permission gate outcome for this
	// device profile; the real prompt lives outside this layer.
	PermissionPrompt bool
}
