package domain

// EvaluationStatus is the state of one transition evaluation.
//
//	Pending -> Succeeded  (all guards exhausted with Continue)
//	        -> Redirected (redirect outcome; a new chain starts for the new
//	                       target, and the decision stays Redirected when that
//	                       chain allows)
//	        -> Aborted    (abort or non-fatal fail; terminal)
//	        -> Failed     (fatal fail, redirect loop, assembly error; terminal)
type EvaluationStatus string

const (
	StatusPending    EvaluationStatus = "pending"
	StatusSucceeded  EvaluationStatus = "succeeded"
	StatusRedirected EvaluationStatus = "redirected"
	StatusAborted    EvaluationStatus = "aborted"
	StatusFailed     EvaluationStatus = "failed"
)

// Terminal reports whether the status ends the evaluation.
func (s EvaluationStatus) Terminal() bool {
	return s == StatusSucceeded || s == StatusAborted || s == StatusFailed
}

// Hop records one chain evaluation within a transition: the target it ran
// against, how many guards executed, which guard halted it (if any) and the
// outcome it produced.
type Hop struct {
	Target    string  `json:"target"`
	GuardsRun int     `json:"guards_run"`
	HaltedBy  string  `json:"halted_by,omitempty"`
	Outcome   Outcome `json:"outcome"`
}

// Decision is the caller-visible result of evaluating a transition. Outcome
// is the final, already-routed outcome (a non-fatal Fail shows up here as its
// Abort conversion; the raw outcome stays in the hop trace).
type Decision struct {
	Status  EvaluationStatus `json:"status"`
	Outcome Outcome          `json:"outcome"`

	// Hops is the redirect trace, oldest first. A plain allow has one entry.
	Hops []Hop `json:"hops,omitempty"`
}

// Allowed reports whether the caller should proceed to the target.
func (d *Decision) Allowed() bool {
	return d.Status == StatusSucceeded
}

// FinalTarget is the target the caller should act on: the last hop's target
// for allowed transitions, or the redirect destination surfaced by Outcome.
func (d *Decision) FinalTarget() string {
	if len(d.Hops) == 0 {
		return ""
	}
	return d.Hops[len(d.Hops)-1].Target
}
