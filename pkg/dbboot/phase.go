package dbboot

//go:generate go run github.com/dmarkham/enumer -type Phase -trimprefix Phase -transform lower -json -output phase.gen.go

// Phase is the current step of the bootstrap sequence.
type Phase int

const (
	PhasePending Phase = iota
	PhasePermissions
	PhaseInitdb
	PhaseStarting
	PhaseCredentials
	PhaseStopping
	PhaseSkipped
	PhaseDone
)
