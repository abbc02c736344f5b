package driver

// Status is the state of one file in a TokenizeFiles batch.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports progress of a batch. Events of one file arrive in order;
// events of different files interleave.
type Event struct {
	Path   string
	Status Status
	Tokens int
	Err    error
}

func (o Options) emit(ev Event) {
	if o.Progress != nil {
		o.Progress(ev)
	}
}
