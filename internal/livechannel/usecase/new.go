package usecase

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"resto-notify/internal/livechannel"
	"resto-notify/pkg/log"
)

// implManager implements livechannel.Manager. One instance per process; the
// composition root injects it wherever connection state must be read.
type implManager struct {
	l   log.Logger
	cfg livechannel.Config

	mu           sync.Mutex
	state        livechannel.State
	userID       string
	restaurantID string
	conn         *websocket.Conn
	cancel       context.CancelFunc
	done         chan struct{}

	handlerMu sync.RWMutex
	handler   livechannel.EventHandler
}

// New creates a live channel Manager.
func New(l log.Logger, cfg livechannel.Config) livechannel.Manager {
	return &implManager{
		l:     l,
		cfg:   cfg,
		state: livechannel.StateDisconnected,
	}
}
