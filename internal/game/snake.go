package game

// PickNumberFor returns the overall pick number of a board cell. Rounds and
// teams are 1-indexed. Odd rounds run team 1 -> TeamCount, even rounds run
// back from TeamCount -> 1.
func (o Options) PickNumberFor(round, team int) int {
	base := (round - 1) * o.TeamCount
	if round%2 == 1 {
		return base + team
	}
	return base + (o.TeamCount - team + 1)
}

// RoundAndTeamFor is the inverse of PickNumberFor.
func (o Options) RoundAndTeamFor(pick int) (round, team int) {
	round = (pick + o.TeamCount - 1) / o.TeamCount
	offset := pick - (round-1)*o.TeamCount
	if round%2 == 1 {
		return round, offset
	}
	return round, o.TeamCount - offset + 1
}
