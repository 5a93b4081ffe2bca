package usecase

import (
	"context"
	"sync"

	"resto-notify/internal/dispatch"
	"resto-notify/internal/push"
	"resto-notify/internal/store"
	"resto-notify/pkg/log"
	"resto-notify/pkg/panelapi"
	pkgRedis "resto-notify/pkg/redis"
)

// implManager implements push.Manager.
type implManager struct {
	l          log.Logger
	cfg        push.Config
	store      store.Store
	api        panelapi.API
	client     *pkgRedis.Client
	dispatcher dispatch.UseCase

	mu          sync.Mutex
	registering bool
	subCancel   context.CancelFunc
	subDone     chan struct{}
}

// New creates a push Manager. A nil broker client means the platform has no
// push support; the manager then behaves like permission-denied.
func New(
	l log.Logger,
	cfg push.Config,
	st store.Store,
	api panelapi.API,
	client *pkgRedis.Client,
	dispatcher dispatch.UseCase,
) push.Manager {
	return &implManager{
		l:          l,
		cfg:        cfg,
		store:      st,
		api:        api,
		client:     client,
		dispatcher: dispatcher,
	}
}
