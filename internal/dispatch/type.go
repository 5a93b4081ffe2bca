package dispatch

// Source identifies which transport delivered a raw event.
type Source string

const (
	SourceLive Source = "live"
	SourcePush Source = "push"
)

// Notification is the rendered form handed to a display sink.
type Notification struct {
	ID       string
	Title    string
	Body     string
	DeepLink string
}

// Stats holds dispatch counters.
type Stats struct {
	Handled     int64 `json:"handled"`
	Deduped     int64 `json:"deduped"`
	Toasts      int64 `json:"toasts"`
	OSRendered  int64 `json:"os_rendered"`
	Malformed   int64 `json:"malformed"`
	SoundErrors int64 `json:"sound_errors"`
}
