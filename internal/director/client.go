package director

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/malexanderboyd/pwr9-draftboard/internal/director/models"
)

// Client is one websocket connection. Id is unique per connection; Session
// comes from the client cookie and is shared by every tab of a browser.
type Client struct {
	Id        string
	Session   string
	director  *Director
	Websocket *websocket.Conn
	ch        chan *models.Message
	doneCh    chan struct{}
	doneOnce  sync.Once
}

func NewClient(director *Director, session string) (*Client, error) {
	if director == nil {
		return nil, errors.New("cannot add client with nil Director")
	}
	if session == "" {
		return nil, errors.New("client session is required")
	}
	return &Client{
		Id:       uuid.NewString(),
		Session:  session,
		director: director,
		ch:       make(chan *models.Message, models.ChannelBufSize),
		doneCh:   make(chan struct{}),
	}, nil
}

// Write queues msg for the peer. A client whose buffer is full is too slow
// to keep up and gets disconnected.
func (c *Client) Write(msg *models.Message) {
	select {
	case <-c.doneCh:
		return
	default:
	}
	select {
	case c.ch <- msg:
	default:
		c.director.logger.Warnw("client send buffer full, disconnecting", "client", c.Id)
		c.Done()
	}
}

func (c *Client) Listen() {
	go c.listenWrite()
	c.listenRead()
}

func (c *Client) listenRead() {
	defer c.Done()

	logger := c.director.logger
	c.Websocket.SetReadLimit(models.MaxMessageSize)
	_ = c.Websocket.SetReadDeadline(time.Now().Add(models.PongWait))
	c.Websocket.SetPongHandler(func(string) error {
		return c.Websocket.SetReadDeadline(time.Now().Add(models.PongWait))
	})
	logger.Debugw("listening to read", "client", c.Id)
	for {
		_, msgContent, err := c.Websocket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warnw("client connection closed unexpectedly", "client", c.Id, "error", err)
			}
			return
		}
		var msg models.Message
		if err := json.Unmarshal(msgContent, &msg); err != nil {
			logger.Debugw("discarding malformed client message", "client", c.Id, "error", err)
			c.director.replyError(c, "message is not valid json")
			continue
		}
		if !c.director.Receive(c.Id, &msg) {
			return
		}
	}
}

func (c *Client) listenWrite() {
	logger := c.director.logger
	logger.Debugw("listening to write", "client", c.Id)
	ticker := time.NewTicker(models.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Websocket.Close()
		c.director.DeleteClient(c)
	}()
	for {
		select {
		case msg := <-c.ch:
			_ = c.Websocket.SetWriteDeadline(time.Now().Add(models.WriteWait))
			if err := c.Websocket.WriteJSON(msg); err != nil {
				logger.Debugw("failed to write to client", "client", c.Id, "error", err)
				c.Done()
				return
			}
		case <-c.doneCh:
			logger.Debugw("client done writing", "client", c.Id)
			_ = c.Websocket.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(models.WriteWait))
			return
		case <-ticker.C:
			_ = c.Websocket.SetWriteDeadline(time.Now().Add(models.WriteWait))
			if err := c.Websocket.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Done()
				return
			}
		}
	}
}

// Done stops both pumps. Safe to call more than once.
func (c *Client) Done() {
	c.doneOnce.Do(func() { close(c.doneCh) })
}
