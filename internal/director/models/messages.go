package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/malexanderboyd/pwr9-draftboard/internal/draft"
	"github.com/malexanderboyd/pwr9-draftboard/internal/game"
)

// Message is the websocket envelope. Data holds one of the payloads below.
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewMessage marshals data into an envelope.
func NewMessage(t MessageType, data any) (*Message, error) {
	if data == nil {
		return &Message{Type: t}, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{Type: t, Data: b}, nil
}

type AddPickRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	NFLTeam  string `json:"nflTeam"`
	// DraftPick arrives as a number or as the raw text of a form field.
	DraftPick json.RawMessage `json:"draftPick,omitempty"`
}

func (r AddPickRequest) Input() draft.AddPickInput {
	return draft.AddPickInput{
		Name:      r.Name,
		Position:  r.Position,
		NFLTeam:   r.NFLTeam,
		DraftPick: RawPickNumber(r.DraftPick),
	}
}

// RawPickNumber accepts 13, "13" or " 13 ". Anything else is nil.
func RawPickNumber(raw json.RawMessage) *int {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return draft.ParsePickNumber(s)
}

type PickRequest struct {
	DraftPick int `json:"draftPick"`
}

type TokenRequest struct {
	Token string `json:"token"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type CellRequest struct {
	PickNumber int `json:"pickNumber"`
}

type BoardStatePayload struct {
	ClientID string        `json:"clientId,omitempty"`
	Options  game.Options  `json:"options"`
	Board    draft.Board   `json:"board"`
	Summary  draft.Summary `json:"summary"`
}

// PickEventPayload carries the whole board since a removal can renumber
// every later pick.
type PickEventPayload struct {
	Pick    *draft.Pick   `json:"pick,omitempty"`
	Count   int           `json:"count"`
	Board   draft.Board   `json:"board"`
	Summary draft.Summary `json:"summary"`
}

type SearchResultsPayload struct {
	Query   string       `json:"query"`
	Matches []draft.Pick `json:"matches"`
}

type ConfirmRemovePayload struct {
	Token     string     `json:"token"`
	Pick      draft.Pick `json:"pick"`
	Prompt    string     `json:"prompt"`
	ExpiresIn int        `json:"expiresIn"`
}

type HighlightPayload struct {
	PickNumber int         `json:"pickNumber"`
	Round      int         `json:"round"`
	Team       int         `json:"team"`
	Pick       *draft.Pick `json:"pick,omitempty"`
}

type ErrorPayload struct {
	Code    draft.Code `json:"code"`
	Message string     `json:"message"`
}

type WarningPayload struct {
	Message string `json:"message"`
}
