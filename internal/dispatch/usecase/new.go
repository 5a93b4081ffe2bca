package usecase

import (
	"sync"
	"sync/atomic"

	"resto-notify/internal/cache"
	"resto-notify/internal/dispatch"
	"resto-notify/internal/store"
	"resto-notify/pkg/log"
	"resto-notify/pkg/panelapi"
	"resto-notify/pkg/sound"
)

// implUseCase implements dispatch.UseCase.
type implUseCase struct {
	l           log.Logger
	store       store.Store
	focus       dispatch.FocusReader
	invalidator cache.Invalidator
	api         panelapi.API
	player      sound.Player
	toast       dispatch.Sink
	osSink      dispatch.Sink

	mu   sync.Mutex
	seen map[string]struct{}

	handled     atomic.Int64
	deduped     atomic.Int64
	toasts      atomic.Int64
	osRendered  atomic.Int64
	malformed   atomic.Int64
	soundErrors atomic.Int64
}

// New creates the dispatcher. Both transports funnel into the one instance;
// its dedup memory is what guarantees displayed-at-most-once.
func New(
	l log.Logger,
	st store.Store,
	focus dispatch.FocusReader,
	invalidator cache.Invalidator,
	api panelapi.API,
	player sound.Player,
	toast dispatch.Sink,
	osSink dispatch.Sink,
) dispatch.UseCase {
	return &implUseCase{
		l:           l,
		store:       st,
		focus:       focus,
		invalidator: invalidator,
		api:         api,
		player:      player,
		toast:       toast,
		osSink:      osSink,
		seen:        make(map[string]struct{}),
	}
}
