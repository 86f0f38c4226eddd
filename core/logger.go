package core

// Logger is any service that can log messages.
// args may contain errors, map[string]interface{} extras and a Learner.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Learner identifies the person a workspace belongs to.
type Learner struct {
	ID string `json:"id"`
}

// Recorder receives operational counters from the stores.
type Recorder interface {
	// ObserveMutation counts a store operation and how it ended (applied, rejected, noop, failed).
	ObserveMutation(tool, op, outcome string)
	// ObserveRepair counts records dropped or snapped during rehydration.
	ObserveRepair(tool string, dropped, snapped int)
	// ObservePersistFailure counts document writes that failed.
	ObservePersistFailure(tool string)
}

// Mutation outcomes
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeNoop     = "noop"
	OutcomeFailed   = "failed"
)

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) ObserveMutation(string, string, string) {}
func (NopRecorder) ObserveRepair(string, int, int)         {}
func (NopRecorder) ObservePersistFailure(string)           {}
