package scrollz

import "github.com/zoobzio/capitan"

// Field keys for scrollz events.
var (
	// KeyProcessor is the name of the processor emitting the event.
	KeyProcessor = capitan.NewStringKey("processor")

	// KeyPage is the page index being fetched or appended.
	KeyPage = capitan.NewIntKey("page")

	// KeyItems is the number of items a page added.
	KeyItems = capitan.NewIntKey("items")

	// KeyTotal is the size of the accumulated buffer.
	KeyTotal = capitan.NewIntKey("total")

	// KeyCoalesced is the number of values collapsed into one emission.
	KeyCoalesced = capitan.NewIntKey("coalesced")

	// KeyDuration is how long a fetch took.
	KeyDuration = capitan.NewDurationKey("duration")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")
)
