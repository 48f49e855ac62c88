package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case TokenResult:
		o.printTokenResult(v)
	case Session:
		o.printSession(v)
	case SessionDetail:
		o.printSessionDetail(v)
	case EventAck:
		o.printEventAck(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// TokenResult response type (matches API)
type TokenResult struct {
	Token string `json:"token"`
}

// Session response type
type Session struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Mode       string     `json:"mode"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Score      *int       `json:"score,omitempty"`
	Hits       *int       `json:"hits,omitempty"`
	Misses     *int       `json:"misses,omitempty"`
}

// Event response type
type Event struct {
	Type     string    `json:"type"`
	TS       time.Time `json:"ts"`
	Hit      bool      `json:"hit"`
	Distance float64   `json:"distance"`
}

// SessionDetail response type
type SessionDetail struct {
	Session
	Events     []Event `json:"events"`
	OwnerEmail string  `json:"owner_email"`
}

// EventAck response type
type EventAck struct {
	Accepted bool `json:"accepted"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Mode       string    `json:"mode"`
	Score      int       `json:"score"`
	Hits       int       `json:"hits"`
	Misses     int       `json:"misses"`
	FinishedAt time.Time `json:"finished_at"`
}

// Leaderboard response type
type Leaderboard struct {
	Mode    string             `json:"mode"`
	Entries []LeaderboardEntry `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printTokenResult(t TokenResult) {
	fmt.Printf("Token: %s\n", t.Token)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Mode: %s\n", s.Mode)
	fmt.Printf("Started: %s\n", s.StartedAt.Format(time.RFC3339))
	if s.FinishedAt != nil {
		fmt.Printf("Finished: %s\n", s.FinishedAt.Format(time.RFC3339))
	}
	if s.Score != nil {
		fmt.Printf("Score: %d (%d hits, %d misses)\n", *s.Score, *s.Hits, *s.Misses)
	}
}

func (o *Output) printSessionDetail(d SessionDetail) {
	o.printSession(d.Session)
	fmt.Printf("Owner: %s\n", d.OwnerEmail)
	fmt.Printf("Events (%d):\n", len(d.Events))
	for _, e := range d.Events {
		outcome := "miss"
		if e.Hit {
			outcome = "hit"
		}
		fmt.Printf("  - %s %s at %.1fm\n", e.TS.Format(time.RFC3339), outcome, e.Distance)
	}
}

func (o *Output) printEventAck(a EventAck) {
	if a.Accepted {
		fmt.Println("Shot recorded")
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard (%s):\n", l.Mode)
	if len(l.Entries) == 0 {
		fmt.Println("  (empty)")
		return
	}
	for _, e := range l.Entries {
		fmt.Printf("  %2d. %-30s %5d pts (%d hits, %d misses)\n",
			e.Rank, e.Email, e.Score, e.Hits, e.Misses)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
