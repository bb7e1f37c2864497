package domain

// Action selects one of the pipeline's mutually exclusive run modes.
type Action int

const (
	// ActionAdd ingests new or changed files into the index.
	ActionAdd Action = iota

	// ActionRemove deletes the listed paths from storage and index.
	ActionRemove

	// ActionRemoveAll wipes stored blobs and all index content.
	ActionRemoveAll
)

// String returns the action name for logging.
func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionRemoveAll:
		return "removeall"
	default:
		return "unknown"
	}
}
