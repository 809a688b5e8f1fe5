package director

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/malexanderboyd/pwr9-draftboard/internal/director/models"
	"github.com/malexanderboyd/pwr9-draftboard/internal/draft"
	"github.com/malexanderboyd/pwr9-draftboard/internal/game"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type failingSaver struct{}

func (failingSaver) Save(context.Context, *draft.Snapshot) error { return errors.New("disk full") }

type harness struct {
	director *Director
	clock    *testClock
	cancel   context.CancelFunc
	stopped  chan struct{}
}

func newHarness(t *testing.T, opts game.Options, saver draft.Saver) *harness {
	t.Helper()
	return newLoggedHarness(t, opts, saver, zap.NewNop().Sugar())
}

func newLoggedHarness(t *testing.T, opts game.Options, saver draft.Saver, logger *zap.SugaredLogger) *harness {
	t.Helper()
	clock := &testClock{now: time.Date(2024, time.August, 31, 19, 0, 0, 0, time.UTC)}
	engine, err := draft.NewEngine(&draft.EngineConfig{Options: opts, Saver: saver, TimeProvider: clock})
	require.NoError(t, err)

	tokens := 0
	d, err := NewDirector(Config{
		Engine: engine,
		Logger: logger,
		Now:    clock.Now,
		NewToken: func() string {
			tokens++
			return fmt.Sprintf("token-%d", tokens)
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	h := &harness{director: d, clock: clock, cancel: cancel, stopped: make(chan struct{})}
	go func() {
		defer close(h.stopped)
		_ = d.Listen(ctx)
	}()
	t.Cleanup(h.stop)
	return h
}

func (h *harness) stop() {
	h.cancel()
	<-h.stopped
}

// connect registers a client without a websocket and drains its initial
// board_state.
func (h *harness) connect(t *testing.T, id string) *Client {
	t.Helper()
	c, err := NewClient(h.director, id)
	require.NoError(t, err)
	require.True(t, h.director.AddNewClient(c))
	msg := next(t, c)
	require.Equal(t, models.BoardState, msg.Type)
	return c
}

func (h *harness) send(t *testing.T, c *Client, typ models.MessageType, data any) {
	t.Helper()
	msg, err := models.NewMessage(typ, data)
	require.NoError(t, err)
	require.True(t, h.director.Receive(c.Id, msg))
}

// sync waits until everything queued before it on the loop has run.
func (h *harness) sync(t *testing.T) {
	t.Helper()
	require.NoError(t, h.director.Do(context.Background(), func(*draft.Engine) error { return nil }))
}

func (h *harness) picks(t *testing.T) []draft.Pick {
	t.Helper()
	picks, err := Query(context.Background(), h.director, func(e *draft.Engine) ([]draft.Pick, error) {
		return e.Picks(), nil
	})
	require.NoError(t, err)
	return picks
}

func next(t *testing.T, c *Client) *models.Message {
	t.Helper()
	select {
	case msg := <-c.ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("client %s received nothing", c.Id)
		return nil
	}
}

func payload[T any](t *testing.T, msg *models.Message) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(msg.Data, &v))
	return v
}

func expectError(t *testing.T, c *Client, code draft.Code) models.ErrorPayload {
	t.Helper()
	msg := next(t, c)
	require.Equal(t, models.Error, msg.Type)
	p := payload[models.ErrorPayload](t, msg)
	assert.Equal(t, code, p.Code)
	return p
}

func addPick(name string) models.AddPickRequest {
	return models.AddPickRequest{Name: name, Position: "RB", NFLTeam: "SF"}
}

func manual() game.Options {
	opts := game.DefaultOptions()
	opts.ManualPickEntry = true
	return opts
}

func TestNewDirector_RequiresEngine(t *testing.T) {
	_, err := NewDirector(Config{})
	assert.Error(t, err)
}

func TestNewClient_Validates(t *testing.T) {
	_, err := NewClient(nil, "a")
	assert.Error(t, err)

	h := newHarness(t, game.DefaultOptions(), nil)
	_, err = NewClient(h.director, "")
	assert.Error(t, err)
}

func TestDirector_BoardStateOnConnect(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	c, err := NewClient(h.director, "alice")
	require.NoError(t, err)
	require.True(t, h.director.AddNewClient(c))

	msg := next(t, c)
	require.Equal(t, models.BoardState, msg.Type)
	state := payload[models.BoardStatePayload](t, msg)
	assert.Equal(t, "alice", state.ClientID)
	assert.Equal(t, 12, state.Options.TeamCount)
	assert.Len(t, state.Board.Rows, 15)
	assert.Equal(t, 1, state.Summary.NextPickNumber)
}

func TestDirector_AddPickBroadcasts(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")
	bob := h.connect(t, "bob")

	h.send(t, alice, models.AddPick, addPick("Christian McCaffrey"))

	for _, c := range []*Client{alice, bob} {
		msg := next(t, c)
		require.Equal(t, models.PickAdded, msg.Type)
		ev := payload[models.PickEventPayload](t, msg)
		require.NotNil(t, ev.Pick)
		assert.Equal(t, "Christian McCaffrey", ev.Pick.Name)
		assert.Equal(t, 1, ev.Pick.DraftPick)
		assert.Equal(t, 1, ev.Count)
		assert.Equal(t, 2, ev.Summary.NextPickNumber)
		assert.Equal(t, "Christian McCaffrey", ev.Board.Rows[0].Cells[0].Pick.Name)
	}
}

func TestDirector_AddPickErrorGoesToSenderOnly(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")
	bob := h.connect(t, "bob")

	h.send(t, alice, models.AddPick, models.AddPickRequest{Name: "Nobody"})
	expectError(t, alice, draft.CodeMissingFields)

	h.sync(t)
	assert.Empty(t, bob.ch)
	assert.Empty(t, h.picks(t))
}

func TestDirector_AddPickDuplicate(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")

	h.send(t, alice, models.AddPick, addPick("Tyreek Hill"))
	next(t, alice)
	h.send(t, alice, models.AddPick, addPick("tyreek hill"))
	p := expectError(t, alice, draft.CodeDuplicatePlayer)
	assert.Equal(t, "this player has already been drafted", p.Message)
}

func TestDirector_ManualPickNumberFromFormText(t *testing.T) {
	h := newHarness(t, manual(), nil)
	alice := h.connect(t, "alice")

	req := addPick("Saquon Barkley")
	req.DraftPick = json.RawMessage(`" 13 "`)
	h.send(t, alice, models.AddPick, req)

	msg := next(t, alice)
	require.Equal(t, models.PickAdded, msg.Type)
	assert.Equal(t, 13, payload[models.PickEventPayload](t, msg).Pick.DraftPick)

	req = addPick("Stefon Diggs")
	req.DraftPick = json.RawMessage(`"abc"`)
	h.send(t, alice, models.AddPick, req)
	expectError(t, alice, draft.CodeMissingFields)

	req.DraftPick = json.RawMessage(`13`)
	h.send(t, alice, models.AddPick, req)
	expectError(t, alice, draft.CodePickTaken)
}

func TestDirector_RemoveRequiresConfirmation(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")
	bob := h.connect(t, "bob")

	h.send(t, alice, models.AddPick, addPick("Austin Ekeler"))
	next(t, alice)
	next(t, bob)

	h.send(t, alice, models.RemovePick, models.PickRequest{DraftPick: 1})
	msg := next(t, alice)
	require.Equal(t, models.ConfirmRemove, msg.Type)
	confirm := payload[models.ConfirmRemovePayload](t, msg)
	assert.Equal(t, "token-1", confirm.Token)
	assert.Equal(t, "Austin Ekeler", confirm.Pick.Name)
	assert.Equal(t, "Are you sure you want to remove this player?", confirm.Prompt)

	h.sync(t)
	assert.Len(t, h.picks(t), 1)
	assert.Empty(t, bob.ch)

	h.send(t, alice, models.ConfirmRemove, models.TokenRequest{Token: confirm.Token})
	for _, c := range []*Client{alice, bob} {
		msg := next(t, c)
		require.Equal(t, models.PickRemoved, msg.Type)
		assert.Equal(t, "Austin Ekeler", payload[models.PickEventPayload](t, msg).Pick.Name)
	}
	assert.Empty(t, h.picks(t))

	h.send(t, alice, models.ConfirmRemove, models.TokenRequest{Token: confirm.Token})
	expectError(t, alice, draft.CodeUnknown)
}

func TestDirector_RemoveMissingPick(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")

	h.send(t, alice, models.RemovePick, models.PickRequest{DraftPick: 7})
	expectError(t, alice, draft.CodeNotFound)
}

func TestDirector_ConfirmTokenBoundToClient(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")
	bob := h.connect(t, "bob")

	h.send(t, alice, models.AddPick, addPick("Austin Ekeler"))
	next(t, alice)
	next(t, bob)
	h.send(t, alice, models.RemovePick, models.PickRequest{DraftPick: 1})
	token := payload[models.ConfirmRemovePayload](t, next(t, alice)).Token

	h.send(t, bob, models.ConfirmRemove, models.TokenRequest{Token: token})
	expectError(t, bob, draft.CodeUnknown)
	assert.Len(t, h.picks(t), 1)

	h.send(t, bob, models.CancelRemove, models.TokenRequest{Token: token})
	h.send(t, alice, models.ConfirmRemove, models.TokenRequest{Token: token})
	assert.Equal(t, models.PickRemoved, next(t, alice).Type)
}

func TestDirector_CancelRemove(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")

	h.send(t, alice, models.AddPick, addPick("Austin Ekeler"))
	next(t, alice)
	h.send(t, alice, models.RemovePick, models.PickRequest{DraftPick: 1})
	token := payload[models.ConfirmRemovePayload](t, next(t, alice)).Token

	h.send(t, alice, models.CancelRemove, models.TokenRequest{Token: token})
	h.send(t, alice, models.ConfirmRemove, models.TokenRequest{Token: token})
	expectError(t, alice, draft.CodeUnknown)
	assert.Len(t, h.picks(t), 1)
}

func TestDirector_ConfirmationExpires(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")

	h.send(t, alice, models.AddPick, addPick("Austin Ekeler"))
	next(t, alice)
	h.send(t, alice, models.RemovePick, models.PickRequest{DraftPick: 1})
	token := payload[models.ConfirmRemovePayload](t, next(t, alice)).Token

	h.clock.Advance(models.ConfirmRemoveTTL + time.Second)
	h.send(t, alice, models.ConfirmRemove, models.TokenRequest{Token: token})
	p := expectError(t, alice, draft.CodeUnknown)
	assert.Contains(t, p.Message, "expired")
	assert.Len(t, h.picks(t), 1)
}

func TestDirector_ConfirmAfterRenumberIsRejected(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")

	h.send(t, alice, models.AddPick, addPick("Austin Ekeler"))
	next(t, alice)
	h.send(t, alice, models.AddPick, addPick("Stefon Diggs"))
	next(t, alice)

	h.send(t, alice, models.RemovePick, models.PickRequest{DraftPick: 2})
	stale := payload[models.ConfirmRemovePayload](t, next(t, alice)).Token
	h.send(t, alice, models.RemovePick, models.PickRequest{DraftPick: 1})
	first := payload[models.ConfirmRemovePayload](t, next(t, alice)).Token

	h.send(t, alice, models.ConfirmRemove, models.TokenRequest{Token: first})
	require.Equal(t, models.PickRemoved, next(t, alice).Type)

	// Stefon Diggs has moved to pick 1.
	h.send(t, alice, models.ConfirmRemove, models.TokenRequest{Token: stale})
	expectError(t, alice, draft.CodeNotFound)
	picks := h.picks(t)
	require.Len(t, picks, 1)
	assert.Equal(t, "Stefon Diggs", picks[0].Name)
	assert.Equal(t, 1, picks[0].DraftPick)
}

func TestDirector_Search(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")

	h.send(t, alice, models.AddPick, models.AddPickRequest{Name: "Tyreek Hill", Position: "WR", NFLTeam: "MIA"})
	next(t, alice)

	h.send(t, alice, models.Search, models.SearchRequest{Query: "  wr "})
	res := payload[models.SearchResultsPayload](t, next(t, alice))
	assert.Equal(t, "wr", res.Query)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "Tyreek Hill", res.Matches[0].Name)

	h.send(t, alice, models.Search, models.SearchRequest{Query: "kicker"})
	res = payload[models.SearchResultsPayload](t, next(t, alice))
	assert.Equal(t, "kicker", res.Query)
	assert.NotNil(t, res.Matches)
	assert.Empty(t, res.Matches)

	h.send(t, alice, models.Search, models.SearchRequest{Query: "   "})
	msg := next(t, alice)
	assert.JSONEq(t, `{"query":"","matches":[]}`, string(msg.Data))
}

func TestDirector_CellClickedHighlights(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")
	bob := h.connect(t, "bob")

	h.send(t, alice, models.CellClicked, models.CellRequest{PickNumber: 13})
	msg := next(t, alice)
	require.Equal(t, models.Highlight, msg.Type)
	hl := payload[models.HighlightPayload](t, msg)
	assert.Equal(t, models.HighlightPayload{PickNumber: 13, Round: 2, Team: 12}, hl)

	h.send(t, alice, models.CellClicked, models.CellRequest{PickNumber: 181})
	expectError(t, alice, draft.CodeInvalidPickNumber)

	h.sync(t)
	assert.Empty(t, bob.ch)
	assert.Empty(t, h.picks(t))
}

func TestDirector_LoadSample(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")

	h.send(t, alice, models.LoadSample, nil)
	for i := range draft.SamplePlayers {
		msg := next(t, alice)
		require.Equal(t, models.PickAdded, msg.Type)
		assert.Equal(t, i+1, payload[models.PickEventPayload](t, msg).Pick.DraftPick)
	}
	assert.Len(t, h.picks(t), len(draft.SamplePlayers))
}

func TestDirector_UnknownMessage(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")

	h.send(t, alice, models.MessageType("start_game"), nil)
	p := expectError(t, alice, draft.CodeUnknown)
	assert.Contains(t, p.Message, "start_game")

	require.True(t, h.director.Receive(alice.Id, &models.Message{Type: models.RemovePick, Data: json.RawMessage(`"x"`)}))
	expectError(t, alice, draft.CodeUnknown)
}

func TestDirector_SaveFailureWarnsEveryone(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), failingSaver{})
	alice := h.connect(t, "alice")
	bob := h.connect(t, "bob")

	h.send(t, alice, models.AddPick, addPick("Tyreek Hill"))
	for _, c := range []*Client{alice, bob} {
		msg := next(t, c)
		require.Equal(t, models.Warning, msg.Type)
		assert.Contains(t, payload[models.WarningPayload](t, msg).Message, "disk full")
		assert.Equal(t, models.PickAdded, next(t, c).Type)
	}
	assert.Len(t, h.picks(t), 1)
}

func TestDirector_ResetBroadcasts(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	alice := h.connect(t, "alice")
	h.send(t, alice, models.AddPick, addPick("Tyreek Hill"))
	next(t, alice)

	require.NoError(t, h.director.Do(context.Background(), func(e *draft.Engine) error {
		e.Reset(context.Background())
		return nil
	}))
	msg := next(t, alice)
	require.Equal(t, models.RosterCleared, msg.Type)
	ev := payload[models.PickEventPayload](t, msg)
	assert.Equal(t, 1, ev.Count)
	assert.Equal(t, 0, ev.Summary.TotalDrafted)
	assert.Nil(t, ev.Board.Rows[0].Cells[0].Pick)
}

func TestDirector_DoAndQuery(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	ctx := context.Background()

	pick, err := Query(ctx, h.director, func(e *draft.Engine) (draft.Pick, error) {
		return e.AddPick(ctx, draft.AddPickInput{Name: "Tyreek Hill", Position: "WR", NFLTeam: "MIA"})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pick.DraftPick)

	err = h.director.Do(ctx, func(e *draft.Engine) error { return e.RemovePick(ctx, 9) })
	assert.ErrorIs(t, err, draft.ErrNotFound)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	h.stop()
	err = h.director.Do(cancelled, func(*draft.Engine) error { return nil })
	assert.Error(t, err)
	err = h.director.Do(ctx, func(*draft.Engine) error { return nil })
	assert.ErrorIs(t, err, ErrStopped)
}

func TestDirector_TabsSharingSessionStayConnected(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	first := h.connect(t, "alice")
	second := h.connect(t, "alice")
	assert.NotEqual(t, first.Id, second.Id)

	h.send(t, second, models.AddPick, addPick("Tyreek Hill"))
	for _, c := range []*Client{first, second} {
		msg := next(t, c)
		require.Equal(t, models.PickAdded, msg.Type)
		assert.Equal(t, "Tyreek Hill", payload[models.PickEventPayload](t, msg).Pick.Name)
	}
	select {
	case <-first.doneCh:
		t.Fatal("first tab was disconnected")
	default:
	}

	// A closed tab only removes its own connection.
	h.director.DeleteClient(first)
	h.sync(t)
	h.send(t, second, models.Search, models.SearchRequest{Query: "hill"})
	assert.Equal(t, models.SearchResults, next(t, second).Type)
}

func TestDirector_ConfirmationSurvivesReconnect(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	before := h.connect(t, "alice")

	h.send(t, before, models.AddPick, addPick("Austin Ekeler"))
	next(t, before)
	h.send(t, before, models.RemovePick, models.PickRequest{DraftPick: 1})
	token := payload[models.ConfirmRemovePayload](t, next(t, before)).Token
	h.director.DeleteClient(before)

	after := h.connect(t, "alice")
	h.send(t, after, models.ConfirmRemove, models.TokenRequest{Token: token})
	assert.Equal(t, models.PickRemoved, next(t, after).Type)
	assert.Empty(t, h.picks(t))
}

func TestDirector_LoadSampleOnFullBoard(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	opts := game.Options{TeamCount: 2, RoundCount: 1}
	h := newLoggedHarness(t, opts, nil, zap.New(core).Sugar())
	alice := h.connect(t, "alice")

	h.send(t, alice, models.LoadSample, nil)
	assert.Equal(t, models.PickAdded, next(t, alice).Type)
	assert.Equal(t, models.PickAdded, next(t, alice).Type)
	expectError(t, alice, draft.CodeDraftComplete)

	h.sync(t)
	assert.Zero(t, logs.FilterMessage("sample picks loaded").Len())
	assert.Len(t, h.picks(t), 2)
}

func TestDirector_DoFinishesAcceptedWork(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)

	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		name := fmt.Sprintf("Player %d", i)
		err := h.director.Do(ctx, func(e *draft.Engine) error {
			cancel()
			_, err := e.AddPick(ctx, draft.AddPickInput{Name: name, Position: "WR", NFLTeam: "MIA"})
			return err
		})
		require.NoError(t, err)
	}
	assert.Len(t, h.picks(t), 20)
}

func TestOriginChecker(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	anyOrigin := originChecker(nil)
	assert.True(t, anyOrigin(req("https://evil.example")))

	check := originChecker([]string{"https://draft.example"})
	assert.True(t, check(req("https://draft.example")))
	assert.True(t, check(req("")))
	assert.False(t, check(req("https://evil.example")))
}

func TestDirector_WebsocketRoundTrip(t *testing.T) {
	h := newHarness(t, game.DefaultOptions(), nil)
	srv := httptest.NewServer(h.director)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	cookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, cookie, models.ClientCookieName+"=")

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg models.Message
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, models.BoardState, msg.Type)
	state := payload[models.BoardStatePayload](t, &msg)
	assert.NotEmpty(t, state.ClientID)

	out, err := models.NewMessage(models.AddPick, addPick("Christian McCaffrey"))
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(out))

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, models.PickAdded, msg.Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, models.Error, msg.Type)

	header := http.Header{}
	header.Set("Cookie", models.ClientCookieName+"="+state.ClientID)
	again, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer again.Close()
	_ = again.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, again.ReadJSON(&msg))
	assert.Equal(t, state.ClientID, payload[models.BoardStatePayload](t, &msg).ClientID)

	out, err = models.NewMessage(models.AddPick, addPick("Tyreek Hill"))
	require.NoError(t, err)
	require.NoError(t, again.WriteJSON(out))
	for _, c := range []*websocket.Conn{conn, again} {
		_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got models.Message
		require.NoError(t, c.ReadJSON(&got))
		require.Equal(t, models.PickAdded, got.Type)
		assert.Equal(t, "Tyreek Hill", payload[models.PickEventPayload](t, &got).Pick.Name)
	}
}
