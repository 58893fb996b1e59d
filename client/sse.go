package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// -- Raw SSE event types (client-internal; callers convert to msg.*) ----------

// SSEAuthFailedEvent is dispatched when the SSE stream gets a 401/403.
type SSEAuthFailedEvent struct{}

// SSEConnectedEvent is dispatched when the SSE stream is established.
type SSEConnectedEvent struct{}

// SSEDisconnectedEvent is dispatched when the SSE stream drops or closes.
type SSEDisconnectedEvent struct {
	Err error
}

// SSEReconnectingEvent is dispatched before each reconnect attempt.
type SSEReconnectingEvent struct {
	Attempt int
}

// ItemAddedEvent from SSE event "item_added".
type ItemAddedEvent struct {
	Item Item `json:"item"`
}

// ItemUpdatedEvent from SSE event "item_updated".
type ItemUpdatedEvent struct {
	Item Item `json:"item"`
}

// ItemRemovedEvent from SSE event "item_removed".
type ItemRemovedEvent struct {
	ID string `json:"id"`
}

// CatalogReloadedEvent from SSE event "catalog_reloaded": the server
// replaced the whole collection and clients should refetch.
type CatalogReloadedEvent struct {
	Count int `json:"count"`
}

// SSEParseWarning is emitted when an SSE event cannot be parsed.
// The TUI surfaces it as a toast instead of writing to stderr.
type SSEParseWarning struct {
	Message string
}

// -- SSEClient ----------------------------------------------------------------

// SSEClient manages the Server-Sent Events connection to the catalog
// update stream.
type SSEClient struct {
	baseURL string
	token   string
	done    chan struct{}
	httpCli *http.Client
}

// NewSSE creates an SSE client for the catalog stream.
func NewSSE(baseURL, token string) *SSEClient {
	return &SSEClient{
		baseURL: baseURL,
		token:   token,
		done:    make(chan struct{}),
		httpCli: &http.Client{Timeout: 0},
	}
}

// Close signals the SSE client to stop.
func (s *SSEClient) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// IsClosed reports whether the SSE client has been intentionally closed.
func (s *SSEClient) IsClosed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// ListenCmd returns a tea.Cmd that reads SSE events and sends them as messages.
func (s *SSEClient) ListenCmd(p *tea.Program) tea.Cmd {
	return func() tea.Msg {
		req, err := http.NewRequest("GET", s.baseURL+"/api/v1/stream", nil)
		if err != nil {
			return SSEDisconnectedEvent{Err: err}
		}
		req.Header.Set("Accept", "text/event-stream")
		req.Header.Set("Cache-Control", "no-cache")
		if s.token != "" {
			req.Header.Set("Authorization", "Bearer "+s.token)
		}

		resp, err := s.httpCli.Do(req)
		if err != nil {
			return SSEDisconnectedEvent{Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return SSEAuthFailedEvent{}
		}
		if resp.StatusCode != http.StatusOK {
			return SSEDisconnectedEvent{
				Err: fmt.Errorf("SSE stream returned %d", resp.StatusCode),
			}
		}

		// Signal connected.
		p.Send(SSEConnectedEvent{})

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0), 1024*1024) // 1 MB

		var eventType string

		for scanner.Scan() {
			select {
			case <-s.done:
				return SSEDisconnectedEvent{Err: nil}
			default:
			}

			line := scanner.Text()

			switch {
			case line == "":
				eventType = ""

			case strings.HasPrefix(line, ":"):
				// keepalive comment, ignore

			case strings.HasPrefix(line, "event: "):
				eventType = strings.TrimPrefix(line, "event: ")

			case strings.HasPrefix(line, "data: "):
				data := strings.TrimPrefix(line, "data: ")
				if m := parseSSEEvent(eventType, []byte(data)); m != nil {
					p.Send(m)
				}
			}
		}

		if err := scanner.Err(); err != nil {
			return SSEDisconnectedEvent{Err: err}
		}
		return SSEDisconnectedEvent{Err: nil}
	}
}

// MaxReconnects is the maximum number of reconnect attempts before giving up.
const MaxReconnects = 10

// ReconnectListenCmd is a tea.Cmd that reconnects the SSE stream with backoff.
// Used by the disconnect handler when an unintentional disconnect occurs.
// After MaxReconnects failed attempts it returns an error instead of looping forever.
func (s *SSEClient) ReconnectListenCmd(p *tea.Program) tea.Cmd {
	return func() tea.Msg {
		attempt := 0
		maxBackoff := 30 * time.Second

		for {
			select {
			case <-s.done:
				return SSEDisconnectedEvent{Err: nil}
			default:
			}

			if attempt >= MaxReconnects {
				return SSEDisconnectedEvent{
					Err: fmt.Errorf("SSE reconnect failed after %d attempts", MaxReconnects),
				}
			}

			attempt++
			shift := attempt
			if shift > 5 {
				shift = 5 // cap at 32s to prevent int64 overflow
			}
			backoff := time.Duration(1<<uint(shift)) * time.Second
			if backoff > maxBackoff {
				backoff = maxBackoff
			}

			select {
			case <-time.After(backoff):
			case <-s.done:
				return SSEDisconnectedEvent{Err: nil}
			}

			// Attempt reconnect by running ListenCmd inline.
			p.Send(SSEReconnectingEvent{Attempt: attempt})
			result := s.ListenCmd(p)()
			if _, ok := result.(SSEDisconnectedEvent); ok || result == nil {
				continue
			}
			return result
		}
	}
}

// parseSSEEvent converts an SSE event type + JSON data into a tea.Msg.
func parseSSEEvent(eventType string, data []byte) tea.Msg {
	switch eventType {
	case "connected":
		return SSEConnectedEvent{}

	case "item_added":
		var ev ItemAddedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return SSEParseWarning{Message: fmt.Sprintf("[sse] parse %s: %v", eventType, err)}
		}
		return ev

	case "item_updated":
		var ev ItemUpdatedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return SSEParseWarning{Message: fmt.Sprintf("[sse] parse %s: %v", eventType, err)}
		}
		return ev

	case "item_removed":
		var ev ItemRemovedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return SSEParseWarning{Message: fmt.Sprintf("[sse] parse %s: %v", eventType, err)}
		}
		return ev

	case "catalog_reloaded":
		var ev CatalogReloadedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return SSEParseWarning{Message: fmt.Sprintf("[sse] parse %s: %v", eventType, err)}
		}
		return ev

	default:
		if eventType != "" {
			return SSEParseWarning{Message: fmt.Sprintf("[sse] unknown event type: %s", eventType)}
		}
	}
	return nil
}
