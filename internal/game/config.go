package game

import (
	"errors"
	"fmt"
)

const (
	DefaultTeamCount  = 12
	DefaultRoundCount = 15

	MaxTeamCount  = 32
	MaxRoundCount = 50
)

// Options describes the shape of a draft board. It is fixed once a board is
// created.
type Options struct {
	Title           string `json:"title,omitempty"`
	TeamCount       int    `json:"teamCount"`
	RoundCount      int    `json:"roundCount"`
	ManualPickEntry bool   `json:"manualPickEntry"`
}

func DefaultOptions() Options {
	return Options{
		TeamCount:  DefaultTeamCount,
		RoundCount: DefaultRoundCount,
	}
}

func (o Options) TotalPicks() int {
	return o.TeamCount * o.RoundCount
}

func (o Options) Validate() error {
	if o.TeamCount <= 0 || o.TeamCount > MaxTeamCount {
		return fmt.Errorf("%w: team count must be between 1 and %d, got %d", ErrInvalidOptions, MaxTeamCount, o.TeamCount)
	}
	if o.RoundCount <= 0 || o.RoundCount > MaxRoundCount {
		return fmt.Errorf("%w: round count must be between 1 and %d, got %d", ErrInvalidOptions, MaxRoundCount, o.RoundCount)
	}
	return nil
}

// ValidPick reports whether pick lies on the board.
func (o Options) ValidPick(pick int) bool {
	return pick >= 1 && pick <= o.TotalPicks()
}

var ErrInvalidOptions = errors.New("invalid draft options")
