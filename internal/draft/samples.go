package draft

import (
	"context"
	"errors"
)

// SamplePlayers is a handful of early-round picks used to demo a board.
var SamplePlayers = []AddPickInput{
	{Name: "Christian McCaffrey", Position: "RB", NFLTeam: "SF"},
	{Name: "Tyreek Hill", Position: "WR", NFLTeam: "MIA"},
	{Name: "Austin Ekeler", Position: "RB", NFLTeam: "WAS"},
	{Name: "Stefon Diggs", Position: "WR", NFLTeam: "HOU"},
	{Name: "Saquon Barkley", Position: "RB", NFLTeam: "PHI"},
}

// AddSamplePicks drafts SamplePlayers in order. Players already on the board
// are skipped. In manual mode each sample takes the lowest open pick.
func (e *Engine) AddSamplePicks(ctx context.Context) ([]Pick, error) {
	added := make([]Pick, 0, len(SamplePlayers))
	for _, sample := range SamplePlayers {
		in := sample
		if e.options.ManualPickEntry {
			open := e.lowestOpenPick()
			in.DraftPick = &open
		}
		p, err := e.AddPick(ctx, in)
		if errors.Is(err, ErrDuplicatePlayer) {
			continue
		}
		if err != nil {
			return added, err
		}
		added = append(added, p)
	}
	return added, nil
}

func (e *Engine) lowestOpenPick() int {
	next := 1
	for _, p := range e.picks {
		if p.DraftPick != next {
			break
		}
		next++
	}
	return next
}
