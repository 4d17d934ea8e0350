package tracing

// Span attribute keys used across perch.
const (
	// Tree attributes
	AttrTreeDir  = "tree.dir"
	AttrTreeRows = "tree.rows"

	// Overlay attributes
	AttrPanelName     = "panel.name"
	AttrTreeID        = "tree.id"
	AttrAttachAttempt = "attach.attempt"

	// Profile attributes
	AttrProfileDir = "profile.dir"
)

// Event names for span events.
const (
	EventTreeReloaded    = "tree.reloaded"
	EventOverlayAttached = "overlay.attached"
	EventOverlayGaveUp   = "overlay.gave_up"
	EventProfileSaved    = "profile.saved"
	EventProfileRestored = "profile.restored"
)
