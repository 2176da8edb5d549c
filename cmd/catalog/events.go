package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/zoobzio/capitan"

	"github.com/zoobzio/scrollz"
)

// hookEvents logs paginator lifecycle events.
func hookEvents(logger zerolog.Logger) {
	capitan.Hook(scrollz.PageLoaded, func(_ context.Context, e *capitan.Event) {
		page, _ := scrollz.KeyPage.From(e)
		items, _ := scrollz.KeyItems.From(e)
		total, _ := scrollz.KeyTotal.From(e)
		took, _ := scrollz.KeyDuration.From(e)
		logger.Debug().
			Int("page", page).
			Int("items", items).
			Int("total", total).
			Dur("took", took).
			Msg("page loaded")
	})

	capitan.Hook(scrollz.PageFailed, func(_ context.Context, e *capitan.Event) {
		page, _ := scrollz.KeyPage.From(e)
		errMsg, _ := scrollz.KeyError.From(e)
		logger.Warn().
			Int("page", page).
			Str("error", errMsg).
			Msg("page failed, will retry on next trigger")
	})

	capitan.Hook(scrollz.TriggerDropped, func(_ context.Context, e *capitan.Event) {
		page, _ := scrollz.KeyPage.From(e)
		logger.Debug().Int("page", page).Msg("trigger dropped while loading")
	})
}
