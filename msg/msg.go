// Package msg defines all tea.Msg types dispatched within the catalog
// TUI. It has no upstream imports (client, model) to avoid import cycles.
package msg

// -- Item (mirrors client.Item) --

// Item carries one catalog entry.
// It mirrors client.Item so this package remains import-cycle-free.
type Item struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Summary   string   `json:"summary"`
	Body      string   `json:"body,omitempty"`
	Category  string   `json:"category,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Rating    float64  `json:"rating,omitempty"`
	UpdatedAt string   `json:"updated_at"`
}

// -- Lifecycle --

// HealthResult from the initial health check.
type HealthResult struct {
	Status        string
	Version       string
	UptimeSeconds int64
	ItemCount     int
	Err           error
}

// -- HTTP responses --

// ItemsResult from GET /items.
type ItemsResult struct {
	Items []Item
	Err   error
}

// ItemResult from GET /items/:id.
type ItemResult struct {
	Item Item
	Err  error
}

// CategoriesResult from GET /categories.
type CategoriesResult struct {
	Categories []string
	Err        error
}

// -- Browse events --

// ScrollChanged is the raw scroll passthrough from the browse view:
// forwarded unmodified for caller-side UI effects (status bar readout,
// scrollbar), never reinterpreted.
type ScrollChanged struct {
	Offset int
	Total  int
	Lo     int
	Hi     int
}

// OpenDetail when the user activates the highlighted item.
type OpenDetail struct {
	ID string
}

// JumpToIndex from the jump palette.
type JumpToIndex struct {
	Index  int
	Smooth bool
}

// ScrollStep is one frame of an animated scroll.
type ScrollStep struct {
	Seq int
}

// ScrollSettled after scroll activity has been quiet long enough to
// return the engine to idle.
type ScrollSettled struct {
	Seq int
}

// -- UI events --

// TickMsg for periodic timer updates.
type TickMsg struct{}
