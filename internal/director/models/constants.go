package models

import "time"

const ClientCookieName = "draftboard_client"

type MessageType string

// Inbound, sent by clients.
const (
	AddPick       MessageType = "add_pick"
	RemovePick    MessageType = "remove_pick"
	ConfirmRemove MessageType = "confirm_remove"
	CancelRemove  MessageType = "cancel_remove"
	Search        MessageType = "search"
	CellClicked   MessageType = "cell_clicked"
	LoadSample    MessageType = "load_sample"
)

// Outbound. ConfirmRemove is shared: the server sends it with a token, the
// client echoes it back to go ahead.
const (
	BoardState    MessageType = "board_state"
	PickAdded     MessageType = "pick_added"
	PickRemoved   MessageType = "pick_removed"
	RosterLoaded  MessageType = "roster_loaded"
	RosterCleared MessageType = "roster_cleared"
	SearchResults MessageType = "search_results"
	Highlight     MessageType = "highlight"
	Error         MessageType = "error"
	Warning       MessageType = "warning"
)

const ChannelBufSize = 100

const (
	// Time allowed to write a message to the peer
	WriteWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer
	PongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait
	PingPeriod = (PongWait * 9) / 10

	// Maximum message size allowed from peer
	MaxMessageSize = 4096

	// How long a removal confirmation token stays valid
	ConfirmRemoveTTL = 2 * time.Minute
)
