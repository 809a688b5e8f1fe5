package draft

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/malexanderboyd/pwr9-draftboard/internal/game"
)

//go:generate mockgen -destination=mocks/mock_draft.go -package=mocks github.com/malexanderboyd/pwr9-draftboard/internal/draft Notifier,Saver,TimeProvider

// Saver persists a roster snapshot. Failures are reported, never rolled back.
type Saver interface {
	Save(ctx context.Context, snapshot *Snapshot) error
}

// Clearer is implemented by savers that can drop a stored snapshot. Reset
// uses it when available and saves an empty roster otherwise.
type Clearer interface {
	Clear(ctx context.Context) error
}

type TimeProvider interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type EngineConfig struct {
	Options      game.Options
	Saver        Saver
	Notifier     Notifier
	TimeProvider TimeProvider
	Logger       *zap.SugaredLogger
}

// Engine owns a roster and every rule that applies to it. It is not safe
// for concurrent use; callers serialise access (see director.Director).
type Engine struct {
	options  game.Options
	picks    []Pick
	saver    Saver
	notifier Notifier
	clock    TimeProvider
	logger   *zap.SugaredLogger
}

func NewEngine(cfg *EngineConfig) (*Engine, error) {
	if cfg == nil {
		cfg = &EngineConfig{Options: game.DefaultOptions()}
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		options:  cfg.Options,
		picks:    []Pick{},
		saver:    cfg.Saver,
		notifier: cfg.Notifier,
		clock:    cfg.TimeProvider,
		logger:   cfg.Logger,
	}
	if e.clock == nil {
		e.clock = realClock{}
	}
	if e.logger == nil {
		e.logger = zap.NewNop().Sugar()
	}
	return e, nil
}

// SetNotifier swaps the event sink. Used when the presentation layer is
// built after the engine.
func (e *Engine) SetNotifier(n Notifier) {
	e.notifier = n
}

func (e *Engine) Options() game.Options {
	return e.options
}

func (e *Engine) PickNumberFor(round, team int) int {
	return e.options.PickNumberFor(round, team)
}

func (e *Engine) RoundAndTeamFor(pick int) (round, team int) {
	return e.options.RoundAndTeamFor(pick)
}

// Slot resolves a pick number to its board cell, including the player
// occupying it if any.
func (e *Engine) Slot(pick int) (Cell, error) {
	if !e.options.ValidPick(pick) {
		return Cell{}, newErrorf(CodeInvalidPickNumber, "pick number must be between 1 and %d", e.options.TotalPicks()).
			WithMeta("draft_pick", pick)
	}
	round, team := e.options.RoundAndTeamFor(pick)
	cell := Cell{PickNumber: pick, Round: round, Team: team}
	if p, ok := e.PickAt(pick); ok {
		cell.Pick = &p
	}
	return cell, nil
}

func (e *Engine) AddPick(ctx context.Context, in AddPickInput) (Pick, error) {
	name := strings.TrimSpace(in.Name)
	position := strings.TrimSpace(in.Position)
	nflTeam := strings.TrimSpace(in.NFLTeam)
	if name == "" || position == "" || nflTeam == "" {
		return Pick{}, newError(CodeMissingFields, "please fill in all required fields")
	}

	var number int
	if e.options.ManualPickEntry {
		if in.DraftPick == nil {
			return Pick{}, newError(CodeMissingFields, "please fill in all required fields").
				WithMeta("field", "draftPick")
		}
		number = *in.DraftPick
		if !e.options.ValidPick(number) {
			return Pick{}, newErrorf(CodeInvalidPickNumber, "pick number must be between 1 and %d", e.options.TotalPicks()).
				WithMeta("draft_pick", number)
		}
		if _, taken := e.indexOf(number); taken {
			return Pick{}, newErrorf(CodePickTaken, "pick %d is already taken", number).
				WithMeta("draft_pick", number)
		}
	} else {
		if len(e.picks) >= e.options.TotalPicks() {
			return Pick{}, newErrorf(CodeDraftComplete, "draft is complete, all %d picks have been used", e.options.TotalPicks())
		}
		number = len(e.picks) + 1
	}

	if e.hasPlayer(name) {
		return Pick{}, newError(CodeDuplicatePlayer, "this player has already been drafted").
			WithMeta("name", name)
	}

	pick := Pick{
		Name:      name,
		Position:  position,
		NFLTeam:   nflTeam,
		DraftPick: number,
		Timestamp: e.clock.Now().UTC(),
	}
	idx, _ := e.indexOf(number)
	e.picks = slices.Insert(e.picks, idx, pick)
	e.logger.Debugw("pick added", "draft_pick", number, "name", name)

	e.save(ctx)
	e.notify(Event{Type: PickAdded, Pick: &pick, Count: len(e.picks)})
	return pick, nil
}

func (e *Engine) RemovePick(ctx context.Context, draftPick int) error {
	idx, ok := e.indexOf(draftPick)
	if !ok {
		return newErrorf(CodeNotFound, "no player at pick %d", draftPick).
			WithMeta("draft_pick", draftPick)
	}
	removed := e.picks[idx]
	e.picks = slices.Delete(e.picks, idx, idx+1)
	if !e.options.ManualPickEntry {
		e.renumber()
	}
	e.logger.Debugw("pick removed", "draft_pick", draftPick, "name", removed.Name)

	e.save(ctx)
	e.notify(Event{Type: PickRemoved, Pick: &removed, Count: len(e.picks)})
	return nil
}

// Reset empties the board and clears the stored snapshot. It returns how many
// picks were dropped.
func (e *Engine) Reset(ctx context.Context) int {
	n := len(e.picks)
	e.picks = []Pick{}
	e.logger.Infow("board reset", "removed", n)

	if c, ok := e.saver.(Clearer); ok {
		if err := c.Clear(ctx); err != nil {
			e.logger.Warnw("failed to clear draft snapshot", "error", err)
			e.notify(Event{Type: SaveFailed, Err: err})
		}
	} else {
		e.save(ctx)
	}
	e.notify(Event{Type: RosterCleared, Count: n})
	return n
}

// SearchPicks matches query against name, position and team. A blank query
// returns an empty, non-nil slice.
func (e *Engine) SearchPicks(query string) []Pick {
	q := strings.ToLower(strings.TrimSpace(query))
	results := []Pick{}
	if q == "" {
		return results
	}
	for _, p := range e.picks {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Position), q) ||
			strings.Contains(strings.ToLower(p.NFLTeam), q) {
			results = append(results, p)
		}
	}
	return results
}

// Summary reports progress. NextPickNumber follows auto numbering in both
// modes and is advisory only.
func (e *Engine) Summary() Summary {
	s := Summary{
		TotalDrafted:   len(e.picks),
		CurrentRound:   1,
		NextPickNumber: 1,
		TotalPicks:     e.options.TotalPicks(),
		Complete:       len(e.picks) >= e.options.TotalPicks(),
	}
	if len(e.picks) > 0 {
		s.NextPickNumber = len(e.picks) + 1
		s.CurrentRound, _ = e.options.RoundAndTeamFor(s.NextPickNumber)
	}
	return s
}

func (e *Engine) Picks() []Pick {
	return slices.Clone(e.picks)
}

func (e *Engine) PickAt(draftPick int) (Pick, bool) {
	idx, ok := e.indexOf(draftPick)
	if !ok {
		return Pick{}, false
	}
	return e.picks[idx], true
}

func (e *Engine) Board() Board {
	board := Board{
		Options: e.options,
		Rows:    make([]Row, 0, e.options.RoundCount),
	}
	for round := 1; round <= e.options.RoundCount; round++ {
		row := Row{Round: round, Cells: make([]Cell, 0, e.options.TeamCount)}
		for team := 1; team <= e.options.TeamCount; team++ {
			number := e.options.PickNumberFor(round, team)
			cell := Cell{PickNumber: number, Round: round, Team: team}
			if p, ok := e.PickAt(number); ok {
				cell.Pick = &p
			}
			row.Cells = append(row.Cells, cell)
		}
		board.Rows = append(board.Rows, row)
	}
	return board
}

func (e *Engine) Snapshot() *Snapshot {
	return &Snapshot{
		Picks:     e.Picks(),
		Timestamp: e.clock.Now().UTC(),
	}
}

type snapshotDocument struct {
	Picks   json.RawMessage `json:"picks"`
	Players json.RawMessage `json:"players"`
}

type pickRecord struct {
	Name      string          `json:"name"`
	Position  string          `json:"position"`
	NFLTeam   string          `json:"nflTeam"`
	DraftPick *int            `json:"draftPick"`
	Timestamp json.RawMessage `json:"timestamp"`
}

// LoadSnapshot replaces the roster with the picks encoded in data. In auto
// mode the loaded picks are renumbered 1..N in stored order; in manual mode
// their numbers are kept.
func (e *Engine) LoadSnapshot(ctx context.Context, data []byte) error {
	records, err := decodeRecords(data)
	if err != nil {
		return err
	}

	if !e.options.ManualPickEntry && len(records) > e.options.TotalPicks() {
		return newErrorf(CodeMalformedSnapshot, "snapshot holds %d picks, board has %d", len(records), e.options.TotalPicks())
	}

	picks := make([]Pick, 0, len(records))
	names := make(map[string]bool, len(records))
	numbers := make(map[int]bool, len(records))
	changed := false
	for i, r := range records {
		p := Pick{
			Name:     strings.TrimSpace(r.Name),
			Position: strings.TrimSpace(r.Position),
			NFLTeam:  strings.TrimSpace(r.NFLTeam),
		}
		if p.Name == "" || p.Position == "" || p.NFLTeam == "" {
			return newErrorf(CodeMalformedSnapshot, "record %d is missing required fields", i).
				WithMeta("index", i)
		}
		key := strings.ToLower(p.Name)
		if names[key] {
			return newErrorf(CodeMalformedSnapshot, "player %q appears more than once", p.Name).
				WithMeta("index", i)
		}
		names[key] = true

		if e.options.ManualPickEntry {
			if r.DraftPick == nil || !e.options.ValidPick(*r.DraftPick) || numbers[*r.DraftPick] {
				return newErrorf(CodeMalformedSnapshot, "record %d has an invalid pick number", i).
					WithMeta("index", i)
			}
			p.DraftPick = *r.DraftPick
			numbers[p.DraftPick] = true
		} else {
			p.DraftPick = i + 1
			if r.DraftPick == nil || *r.DraftPick != p.DraftPick {
				changed = true
			}
		}
		p.Timestamp = parseTimestamp(r.Timestamp)
		picks = append(picks, p)
	}
	if e.options.ManualPickEntry {
		slices.SortFunc(picks, func(a, b Pick) int { return a.DraftPick - b.DraftPick })
	}

	e.picks = picks
	e.logger.Infow("roster loaded", "picks", len(picks), "renumbered", changed)
	if changed {
		e.save(ctx)
	}
	e.notify(Event{Type: RosterLoaded, Count: len(picks)})
	return nil
}

func decodeRecords(data []byte) ([]pickRecord, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, newError(CodeMalformedSnapshot, "snapshot is empty")
	}

	raw := json.RawMessage(trimmed)
	if trimmed[0] == '{' {
		var doc snapshotDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, &Error{Code: CodeMalformedSnapshot, Message: "snapshot is not valid json", Cause: err}
		}
		switch {
		case len(doc.Picks) > 0:
			raw = doc.Picks
		case len(doc.Players) > 0:
			raw = doc.Players
		default:
			return nil, newError(CodeMalformedSnapshot, "snapshot has no picks")
		}
	}

	var records []pickRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &Error{Code: CodeMalformedSnapshot, Message: "snapshot picks are not a list of picks", Cause: err}
	}
	if records == nil {
		return nil, newError(CodeMalformedSnapshot, "snapshot picks are null")
	}
	return records, nil
}

// parseTimestamp accepts an RFC 3339 string or epoch milliseconds. Anything
// else is the zero time.
func parseTimestamp(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts.UTC()
		}
		return time.Time{}
	}
	var ms json.Number
	if err := json.Unmarshal(raw, &ms); err == nil {
		if n, err := ms.Int64(); err == nil {
			return time.UnixMilli(n).UTC()
		}
	}
	return time.Time{}
}

// indexOf returns the position of draftPick in the roster, or the position
// it would be inserted at.
func (e *Engine) indexOf(draftPick int) (int, bool) {
	return slices.BinarySearchFunc(e.picks, draftPick, func(p Pick, target int) int {
		return p.DraftPick - target
	})
}

func (e *Engine) hasPlayer(name string) bool {
	for _, p := range e.picks {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

func (e *Engine) renumber() {
	for i := range e.picks {
		e.picks[i].DraftPick = i + 1
	}
}

func (e *Engine) save(ctx context.Context) {
	if e.saver == nil {
		return
	}
	if err := e.saver.Save(ctx, e.Snapshot()); err != nil {
		e.logger.Warnw("failed to save draft snapshot", "error", err)
		e.notify(Event{Type: SaveFailed, Count: len(e.picks), Err: err})
	}
}

func (e *Engine) notify(event Event) {
	if e.notifier != nil {
		e.notifier.Notify(event)
	}
}
