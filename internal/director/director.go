// Package director runs a draft board for connected clients. Every engine
// call, whether from a websocket, HTTP or MCP, is executed on the single
// Listen goroutine.
package director

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/malexanderboyd/pwr9-draftboard/internal"
	"github.com/malexanderboyd/pwr9-draftboard/internal/director/models"
	"github.com/malexanderboyd/pwr9-draftboard/internal/director/utils"
	"github.com/malexanderboyd/pwr9-draftboard/internal/draft"
)

// ErrStopped is returned by Do once Listen has returned.
var ErrStopped = errors.New("director stopped")

type Config struct {
	Engine *draft.Engine
	Logger *zap.SugaredLogger
	// AllowedOrigins restricts websocket upgrades. Empty allows any origin.
	AllowedOrigins []string
	Now            func() time.Time
	NewToken       func() string
}

type inbound struct {
	clientID string
	msg      *models.Message
}

type command struct {
	fn     func(*draft.Engine) error
	result chan error
}

type pendingRemoval struct {
	session  string
	pick     draft.Pick
	expires  time.Time
}

type Director struct {
	engine   *draft.Engine
	logger   *zap.SugaredLogger
	upgrader websocket.Upgrader
	now      func() time.Time
	newToken func() string

	// Clients is keyed by connection id.
	Clients map[string]*Client
	pending map[string]pendingRemoval

	addClientCh chan *Client
	delClientCh chan *Client
	inboundCh   chan inbound
	commandCh   chan command
	doneCh      chan struct{}
}

func NewDirector(cfg Config) (*Director, error) {
	if cfg.Engine == nil {
		return nil, errors.New("director requires an engine")
	}
	d := &Director{
		engine:      cfg.Engine,
		logger:      cfg.Logger,
		now:         cfg.Now,
		newToken:    cfg.NewToken,
		Clients:     make(map[string]*Client),
		pending:     make(map[string]pendingRemoval),
		addClientCh: make(chan *Client),
		delClientCh: make(chan *Client),
		inboundCh:   make(chan inbound),
		commandCh:   make(chan command),
		doneCh:      make(chan struct{}),
	}
	if d.logger == nil {
		d.logger = internal.GetLogger().SugaredLogger
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.newToken == nil {
		d.newToken = uuid.NewString
	}
	d.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(cfg.AllowedOrigins),
	}
	cfg.Engine.SetNotifier(d)
	return d, nil
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

func (d *Director) AddNewClient(c *Client) bool {
	select {
	case d.addClientCh <- c:
		return true
	case <-d.doneCh:
		return false
	}
}

func (d *Director) DeleteClient(c *Client) {
	select {
	case d.delClientCh <- c:
	case <-d.doneCh:
	}
}

// Receive hands a client message to the loop. It reports false once the
// director has stopped.
func (d *Director) Receive(clientID string, msg *models.Message) bool {
	select {
	case d.inboundCh <- inbound{clientID: clientID, msg: msg}:
		return true
	case <-d.doneCh:
		return false
	}
}

// Do runs fn on the loop goroutine and waits for it. ctx only bounds the
// wait for the loop to accept fn; once accepted, fn runs to completion and
// its result is returned. fn must not call back into the Director.
func (d *Director) Do(ctx context.Context, fn func(*draft.Engine) error) error {
	cmd := command{fn: fn, result: make(chan error, 1)}
	select {
	case d.commandCh <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-d.doneCh:
		return ErrStopped
	}
	return <-cmd.result
}

// Query is Do for callers that need a value back.
func Query[T any](ctx context.Context, d *Director, fn func(*draft.Engine) (T, error)) (T, error) {
	var out T
	err := d.Do(ctx, func(e *draft.Engine) error {
		v, err := fn(e)
		out = v
		return err
	})
	return out, err
}

// ServeHTTP upgrades the request to a websocket client. A returning browser
// keeps its session through a cookie so pending confirmations survive a
// reconnect. Tabs sharing the cookie are separate connections.
func (d *Director) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, ok := utils.ClientIDFromCookie(r, models.ClientCookieName)
	if !ok {
		session = uuid.NewString()
	}
	client, err := NewClient(d, session)
	if err != nil {
		d.logger.Errorw("failed to create client", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	header := utils.CreateClientIDCookieHeader(session, models.ClientCookieName)
	ws, err := d.upgrader.Upgrade(w, r, header)
	if err != nil {
		// Upgrade has already written the error response.
		d.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}
	client.Websocket = ws

	if !d.AddNewClient(client) {
		_ = ws.Close()
		return
	}
	go client.Listen()
}

// Listen runs the loop until ctx is cancelled.
func (d *Director) Listen(ctx context.Context) error {
	logger := d.logger
	logger.Infow("director listening", "teams", d.engine.Options().TeamCount, "rounds", d.engine.Options().RoundCount)
	defer close(d.doneCh)

	for {
		select {
		case c := <-d.addClientCh:
			d.Clients[c.Id] = c
			logger.Debugw("added client", "client", c.Id, "session", c.Session, "clients", len(d.Clients))
			d.sendBoardState(c)
		case c := <-d.delClientCh:
			if current, ok := d.Clients[c.Id]; ok && current == c {
				delete(d.Clients, c.Id)
				logger.Debugw("removed client", "client", c.Id, "clients", len(d.Clients))
			}
		case in := <-d.inboundCh:
			d.HandleClientMessage(in.clientID, in.msg)
		case cmd := <-d.commandCh:
			cmd.result <- cmd.fn(d.engine)
		case <-ctx.Done():
			for _, c := range d.Clients {
				c.Done()
			}
			logger.Infow("director stopped", "clients", len(d.Clients))
			return nil
		}
	}
}

// Notify turns engine events into broadcasts. It runs on the loop because
// the engine is only ever called from there.
func (d *Director) Notify(event draft.Event) {
	switch event.Type {
	case draft.PickAdded:
		d.broadcast(models.PickAdded, d.pickEvent(event))
	case draft.PickRemoved:
		d.broadcast(models.PickRemoved, d.pickEvent(event))
	case draft.RosterLoaded:
		d.broadcast(models.RosterLoaded, d.pickEvent(event))
	case draft.RosterCleared:
		d.broadcast(models.RosterCleared, d.pickEvent(event))
	case draft.SaveFailed:
		d.broadcast(models.Warning, models.WarningPayload{
			Message: fmt.Sprintf("the draft could not be saved: %v", event.Err),
		})
	}
}

func (d *Director) pickEvent(event draft.Event) models.PickEventPayload {
	return models.PickEventPayload{
		Pick:    event.Pick,
		Count:   event.Count,
		Board:   d.engine.Board(),
		Summary: d.engine.Summary(),
	}
}

func (d *Director) broadcast(t models.MessageType, data any) {
	msg, err := models.NewMessage(t, data)
	if err != nil {
		d.logger.Errorw("failed to encode broadcast", "type", t, "error", err)
		return
	}
	for _, c := range d.Clients {
		c.Write(msg)
	}
}

func (d *Director) send(c *Client, t models.MessageType, data any) {
	msg, err := models.NewMessage(t, data)
	if err != nil {
		d.logger.Errorw("failed to encode message", "type", t, "client", c.Id, "error", err)
		return
	}
	c.Write(msg)
}

func (d *Director) replyError(c *Client, message string) {
	d.send(c, models.Error, models.ErrorPayload{Code: draft.CodeUnknown, Message: message})
}

func (d *Director) replyDraftError(c *Client, err error) {
	var de *draft.Error
	if errors.As(err, &de) {
		d.send(c, models.Error, models.ErrorPayload{Code: de.Code, Message: de.Message})
		return
	}
	d.logger.Errorw("unexpected draft failure", "client", c.Id, "error", err)
	d.replyError(c, "something went wrong")
}

func (d *Director) sendBoardState(c *Client) {
	d.send(c, models.BoardState, models.BoardStatePayload{
		ClientID: c.Session,
		Options:  d.engine.Options(),
		Board:    d.engine.Board(),
		Summary:  d.engine.Summary(),
	})
}

func decode(msg *models.Message, v any) error {
	if len(msg.Data) == 0 {
		return nil
	}
	return json.Unmarshal(msg.Data, v)
}

func (d *Director) HandleClientMessage(clientID string, msg *models.Message) {
	logger := d.logger
	client := d.Clients[clientID]
	if client == nil {
		logger.Warnw("message from unknown client", "client", clientID, "type", msg.Type)
		return
	}
	ctx := context.Background()
	logger.Debugw("client message", "client", clientID, "type", msg.Type)

	switch msg.Type {
	case models.AddPick:
		var req models.AddPickRequest
		if err := decode(msg, &req); err != nil {
			d.replyError(client, "add_pick payload is malformed")
			return
		}
		if _, err := d.engine.AddPick(ctx, req.Input()); err != nil {
			d.replyDraftError(client, err)
		}
	case models.RemovePick:
		var req models.PickRequest
		if err := decode(msg, &req); err != nil {
			d.replyError(client, "remove_pick payload is malformed")
			return
		}
		d.requestRemoval(client, req.DraftPick)
	case models.ConfirmRemove:
		var req models.TokenRequest
		if err := decode(msg, &req); err != nil {
			d.replyError(client, "confirm_remove payload is malformed")
			return
		}
		d.confirmRemoval(ctx, client, req.Token)
	case models.CancelRemove:
		var req models.TokenRequest
		if err := decode(msg, &req); err != nil {
			d.replyError(client, "cancel_remove payload is malformed")
			return
		}
		if p, ok := d.pending[req.Token]; ok && p.session == client.Session {
			delete(d.pending, req.Token)
		}
	case models.Search:
		var req models.SearchRequest
		if err := decode(msg, &req); err != nil {
			d.replyError(client, "search payload is malformed")
			return
		}
		d.send(client, models.SearchResults, models.SearchResultsPayload{
			Query:   strings.TrimSpace(req.Query),
			Matches: d.engine.SearchPicks(req.Query),
		})
	case models.CellClicked:
		var req models.CellRequest
		if err := decode(msg, &req); err != nil {
			d.replyError(client, "cell_clicked payload is malformed")
			return
		}
		cell, err := d.engine.Slot(req.PickNumber)
		if err != nil {
			d.replyDraftError(client, err)
			return
		}
		d.send(client, models.Highlight, models.HighlightPayload{
			PickNumber: cell.PickNumber,
			Round:      cell.Round,
			Team:       cell.Team,
			Pick:       cell.Pick,
		})
	case models.LoadSample:
		added, err := d.engine.AddSamplePicks(ctx)
		if err != nil {
			d.replyDraftError(client, err)
			return
		}
		logger.Infow("sample picks loaded", "client", clientID, "added", len(added))
	default:
		d.replyError(client, fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (d *Director) requestRemoval(c *Client, draftPick int) {
	pick, ok := d.engine.PickAt(draftPick)
	if !ok {
		d.send(c, models.Error, models.ErrorPayload{
			Code:    draft.CodeNotFound,
			Message: fmt.Sprintf("no player at pick %d", draftPick),
		})
		return
	}
	d.expirePending()

	token := d.newToken()
	d.pending[token] = pendingRemoval{
		session:  c.Session,
		pick:     pick,
		expires:  d.now().Add(models.ConfirmRemoveTTL),
	}
	d.send(c, models.ConfirmRemove, models.ConfirmRemovePayload{
		Token:     token,
		Pick:      pick,
		Prompt:    "Are you sure you want to remove this player?",
		ExpiresIn: int(models.ConfirmRemoveTTL / time.Second),
	})
}

func (d *Director) confirmRemoval(ctx context.Context, c *Client, token string) {
	p, ok := d.pending[token]
	if !ok || p.session != c.Session {
		d.replyError(c, "removal was not requested or has already been handled")
		return
	}
	delete(d.pending, token)
	if d.now().After(p.expires) {
		d.replyError(c, "removal confirmation expired, request it again")
		return
	}

	// The roster may have been renumbered since the request.
	current, ok := d.engine.PickAt(p.pick.DraftPick)
	if !ok || !strings.EqualFold(current.Name, p.pick.Name) {
		d.send(c, models.Error, models.ErrorPayload{
			Code:    draft.CodeNotFound,
			Message: fmt.Sprintf("%s is no longer at pick %d", p.pick.Name, p.pick.DraftPick),
		})
		return
	}
	if err := d.engine.RemovePick(ctx, p.pick.DraftPick); err != nil {
		d.replyDraftError(c, err)
	}
}

func (d *Director) expirePending() {
	now := d.now()
	for token, p := range d.pending {
		if now.After(p.expires) {
			delete(d.pending, token)
		}
	}
}
