package workspace

// Status captures progress state for one manifest.
type Status string

const (
	// StatusQueued indicates the manifest is waiting to be processed.
	StatusQueued Status = "queued"
	// StatusFormatting indicates the manifest is being processed.
	StatusFormatting Status = "formatting"
	// StatusClean indicates the manifest needed no changes.
	StatusClean Status = "clean"
	// StatusChanged indicates the manifest needed changes.
	StatusChanged Status = "changed"
	// StatusSkipped indicates the selector or skip list excluded the
	// manifest.
	StatusSkipped Status = "skipped"
	// StatusError indicates processing the manifest failed.
	StatusError Status = "error"
)

// Event reports progress for one manifest file.
type Event struct {
	Path    string
	Status  Status
	Changes int
	Err     error
}

// ProgressSink consumes progress events.  A sink is owned by exactly
// one batch run.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}
