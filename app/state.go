package app

// State represents the current application state.
type State int

const (
	StateConnecting State = iota // Waiting for backend health check
	StateLoading                 // Health OK, catalog fetch in flight
	StateBrowsing                // Scrolling the catalog
	StateDetail                  // Reading a single entry
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateLoading:
		return "loading"
	case StateBrowsing:
		return "browsing"
	case StateDetail:
		return "detail"
	default:
		return "unknown"
	}
}
