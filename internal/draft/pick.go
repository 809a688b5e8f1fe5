package draft

import (
	"strconv"
	"strings"
	"time"

	"github.com/malexanderboyd/pwr9-draftboard/internal/game"
)

// Pick is one drafted player bound to a board slot.
type Pick struct {
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	NFLTeam   string    `json:"nflTeam"`
	DraftPick int       `json:"draftPick"`
	Timestamp time.Time `json:"timestamp"`
}

// AddPickInput is what a form or client message supplies. DraftPick is only
// read when the board uses manual pick entry.
type AddPickInput struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	NFLTeam   string `json:"nflTeam"`
	DraftPick *int   `json:"draftPick,omitempty"`
}

// ParsePickNumber converts a raw form value. Blank or non-numeric input
// yields nil, which AddPick reports as missing.
func ParsePickNumber(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &n
}

// Snapshot is the persisted form of a roster.
type Snapshot struct {
	Picks     []Pick    `json:"picks"`
	Timestamp time.Time `json:"timestamp"`
}

type Summary struct {
	TotalDrafted   int  `json:"totalDrafted"`
	CurrentRound   int  `json:"currentRound"`
	NextPickNumber int  `json:"nextPickNumber"`
	TotalPicks     int  `json:"totalPicks"`
	Complete       bool `json:"complete"`
}

// Cell is one slot of the board grid.
type Cell struct {
	PickNumber int   `json:"pickNumber"`
	Round      int   `json:"round"`
	Team       int   `json:"team"`
	Pick       *Pick `json:"pick,omitempty"`
}

type Row struct {
	Round int    `json:"round"`
	Cells []Cell `json:"cells"`
}

type Board struct {
	Options game.Options `json:"options"`
	Rows    []Row        `json:"rows"`
}
