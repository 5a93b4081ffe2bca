package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"resto-notify/internal/cache"
	"resto-notify/internal/dispatch"
	"resto-notify/internal/model"
	"resto-notify/pkg/deeplink"
	"resto-notify/pkg/format"
	"resto-notify/pkg/sound"
)

func (uc *implUseCase) Handle(ctx context.Context, raw json.RawMessage, source dispatch.Source) error {
	ev, err := uc.normalize(raw, source)
	if err != nil {
		uc.malformed.Add(1)
		uc.l.Warnf(ctx, "internal.dispatch.usecase.Handle: dropping malformed %s payload: %v", source, err)
		return nil
	}

	// Cache invalidation happens even for duplicates; it is idempotent and
	// the second transport confirming an event must still refresh listings.
	uc.invalidate(ctx, ev.Type)

	if uc.alreadyDispatched(ev.ID) {
		uc.deduped.Add(1)
		uc.l.Debugf(ctx, "internal.dispatch.usecase.Handle: duplicate %s via %s suppressed", ev.ID, source)
		return nil
	}

	uc.store.AddEvent(ctx, ev)
	uc.handled.Add(1)

	link, err := deeplink.Build(ev.Type, ev.EntityID)
	if err != nil {
		uc.l.Warnf(ctx, "internal.dispatch.usecase.Handle: no deep link for %s: %v", ev.ID, err)
	}

	notification := dispatch.Notification{
		ID:       ev.ID,
		Title:    ev.Title,
		Body:     format.Body(ev.Type, ev.Body),
		DeepLink: link,
	}

	if uc.store.SoundEnabled(ctx) {
		uc.playCue(ctx)
	}

	// Focus is read here, at dispatch time. It can change between event
	// arrival and render.
	if uc.focus.Focused() {
		if err := uc.toast.Show(ctx, notification); err != nil {
			uc.l.Errorf(ctx, "internal.dispatch.usecase.Handle: toast render failed for %s: %v", ev.ID, err)
			return nil
		}
		uc.toasts.Add(1)
		return nil
	}

	if err := uc.osSink.Show(ctx, notification); err != nil {
		uc.l.Errorf(ctx, "internal.dispatch.usecase.Handle: OS render failed for %s: %v", ev.ID, err)
		return nil
	}
	uc.osRendered.Add(1)
	return nil
}

func (uc *implUseCase) MarkRead(ctx context.Context, id string) error {
	uc.store.MarkEventSeen(ctx, id)

	// Backend read state is eventually consistent; a failed call is logged
	// and never blocks whatever the caller does next.
	if err := uc.api.MarkSeen(ctx, id); err != nil {
		uc.l.Warnf(ctx, "internal.dispatch.usecase.MarkRead: backend mark-seen failed for %s: %v", id, err)
	}
	return nil
}

func (uc *implUseCase) Click(ctx context.Context, id string) (string, error) {
	var target *model.NotificationEvent
	for _, ev := range uc.store.Events(ctx) {
		if ev.ID == id {
			found := ev
			target = &found
			break
		}
	}
	if target == nil {
		return "", dispatch.ErrUnknownNotification
	}

	_ = uc.MarkRead(ctx, id)

	link, err := deeplink.Build(target.Type, target.EntityID)
	if err != nil {
		return "", err
	}
	return link, nil
}

func (uc *implUseCase) WarmUpSound(ctx context.Context) {
	uc.player.WarmUp(ctx)
}

func (uc *implUseCase) ResetSession(ctx context.Context) {
	uc.mu.Lock()
	uc.seen = make(map[string]struct{})
	uc.mu.Unlock()
	uc.l.Info(ctx, "internal.dispatch.usecase.ResetSession: dedup memory cleared")
}

func (uc *implUseCase) Stats(ctx context.Context) dispatch.Stats {
	return dispatch.Stats{
		Handled:     uc.handled.Load(),
		Deduped:     uc.deduped.Load(),
		Toasts:      uc.toasts.Load(),
		OSRendered:  uc.osRendered.Load(),
		Malformed:   uc.malformed.Load(),
		SoundErrors: uc.soundErrors.Load(),
	}
}

// normalize produces the canonical event from either transport's raw shape.
func (uc *implUseCase) normalize(raw json.RawMessage, source dispatch.Source) (model.NotificationEvent, error) {
	switch source {
	case dispatch.SourceLive:
		var ev model.NotificationEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return model.NotificationEvent{}, err
		}
		if ev.ID == "" || !ev.Type.Valid() {
			return model.NotificationEvent{}, errors.New("missing id or unknown type")
		}
		return ev, nil

	case dispatch.SourcePush:
		var payload model.PushPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return model.NotificationEvent{}, err
		}
		ev := payload.Data.Event()
		if ev.ID == "" || !ev.Type.Valid() {
			return model.NotificationEvent{}, errors.New("missing entity id or unknown type")
		}
		return ev, nil

	default:
		return model.NotificationEvent{}, dispatch.ErrUnknownSource
	}
}

// alreadyDispatched records the id and reports whether it was seen before.
func (uc *implUseCase) alreadyDispatched(id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.seen[id]; ok {
		return true
	}
	uc.seen[id] = struct{}{}
	return false
}

func (uc *implUseCase) invalidate(ctx context.Context, t model.EventType) {
	tags := []string{cache.TagNotifications}
	switch t {
	case model.EventTypeOrder:
		tags = append(tags, cache.TagOrders)
	case model.EventTypeReservation:
		tags = append(tags, cache.TagReservations)
	}

	for _, tag := range tags {
		if err := uc.invalidator.InvalidateTag(ctx, tag); err != nil {
			uc.l.Warnf(ctx, "internal.dispatch.usecase.invalidate: tag %s: %v", tag, err)
		}
	}
}

func (uc *implUseCase) playCue(ctx context.Context) {
	err := uc.player.Play(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, sound.ErrNotWarmedUp) {
		// Autoplay is still gated; the cue unlocks on the first gesture.
		uc.l.Debug(ctx, "internal.dispatch.usecase.playCue: audio not warmed up yet")
		return
	}
	uc.soundErrors.Add(1)
	uc.l.Warnf(ctx, "internal.dispatch.usecase.playCue: %v", err)
}
