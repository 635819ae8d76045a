package model

// Action describes what the cleaner did for a single project root.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons. The String() method provides human-readable
// output for reports and the history database.
type Action int

const (
	// ActionCleaned means the external clean operation ran successfully
	// and the targeted artifacts were removed.
	ActionCleaned Action = iota

	// ActionMeasured means dry-run mode measured the reclaimable space
	// without deleting anything.
	ActionMeasured

	// ActionFailed means the clean operation or the dry-run measurement
	// failed for this project. The run continues with the next project.
	ActionFailed
)

// String returns a human-readable representation of the action.
func (a Action) String() string {
	switch a {
	case ActionCleaned:
		return "CLEANED"
	case ActionMeasured:
		return "MEASURED"
	case ActionFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// ParseAction converts a stored action string back to an Action.
// Unknown strings map to ActionFailed so that corrupted history rows
// are visible rather than silently reported as successes.
func ParseAction(s string) Action {
	switch s {
	case "CLEANED":
		return ActionCleaned
	case "MEASURED":
		return ActionMeasured
	default:
		return ActionFailed
	}
}

// CleanResult is the per-project outcome of one clean or measure operation.
type CleanResult struct {
	// Path is the absolute path of the project root.
	Path string `json:"path"`

	// Action is what happened: cleaned, measured, or failed.
	Action Action `json:"-"`

	// ActionLabel is the string form of Action, kept for JSON output.
	ActionLabel string `json:"action"`

	// Bytes is the number of bytes actually freed, or that would be
	// freed under dry-run. Zero when the operation failed or the
	// project was already clean.
	Bytes uint64 `json:"bytes"`

	// Error holds the failure reason when Action is ActionFailed.
	// Empty on success.
	Error string `json:"error,omitempty"`
}

// NewCleanResult creates a CleanResult with a consistent action label.
func NewCleanResult(path string, action Action, bytes uint64, errMsg string) CleanResult {
	return CleanResult{
		Path:        path,
		Action:      action,
		ActionLabel: action.String(),
		Bytes:       bytes,
		Error:       errMsg,
	}
}

// Failed reports whether this result represents a per-project failure.
func (r CleanResult) Failed() bool {
	return r.Action == ActionFailed
}
