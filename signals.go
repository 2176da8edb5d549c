package scrollz

import "github.com/zoobzio/capitan"

// Paginator lifecycle signals.
var (
	// PaginatorStarted is emitted when a Paginator begins consuming triggers.
	PaginatorStarted = capitan.NewSignal(
		"scrollz.paginator.started",
		"Paginator started",
	)

	// PaginatorStopped is emitted when a Paginator run ends.
	PaginatorStopped = capitan.NewSignal(
		"scrollz.paginator.stopped",
		"Paginator stopped",
	)
)

// Page fetch signals.
var (
	// PageRequested is emitted when a fetch is issued for a page.
	PageRequested = capitan.NewSignal(
		"scrollz.page.requested",
		"Page fetch issued",
	)

	// PageLoaded is emitted when a page has been appended to the buffer.
	PageLoaded = capitan.NewSignal(
		"scrollz.page.loaded",
		"Page appended to accumulated buffer",
	)

	// PageFailed is emitted when a page fetch fails.
	PageFailed = capitan.NewSignal(
		"scrollz.page.failed",
		"Page fetch failed",
	)

	// TriggerDropped is emitted when a signal arrives while a fetch is in flight.
	TriggerDropped = capitan.NewSignal(
		"scrollz.trigger.dropped",
		"Trigger ignored while fetch in flight",
	)
)

// Coalescing signals.
var (
	// CoalesceFlushed is emitted when a settling window closes and its value is emitted.
	CoalesceFlushed = capitan.NewSignal(
		"scrollz.coalesce.flushed",
		"Settled value emitted",
	)
)
