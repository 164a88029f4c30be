package model

// State is a step of the download workflow state machine.
type State string

const (
	// StateIdle means no run has started yet
	StateIdle State = "Idle"

	// StateValidating means the destination directory is being checked
	StateValidating State = "Validating"

	// StateResolving means the URL is being resolved into stream metadata
	StateResolving State = "Resolving"

	// StateAwaitingConfirmation means the run waits for the user's decision
	StateAwaitingConfirmation State = "AwaitingConfirmation"

	// StateDownloading means stream bytes are being transferred
	StateDownloading State = "Downloading"

	// StateConverting means the downloaded video is being transcoded to audio
	StateConverting State = "Converting"

	// StateDone means the run produced a file
	StateDone State = "Done"

	// StateFailed means the run ended with an error
	StateFailed State = "Failed"
)

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// IsActive returns true while a run is between its first and last step
func (s State) IsActive() bool {
	switch s {
	case StateValidating, StateResolving, StateAwaitingConfirmation, StateDownloading, StateConverting:
		return true
	}
	return false
}

// IsFinished returns true if the run reached a terminal state
func (s State) IsFinished() bool {
	return s == StateDone || s == StateFailed
}
