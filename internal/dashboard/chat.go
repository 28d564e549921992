package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jeet-integrated/elvproposal/internal/consultant"
	"github.com/jeet-integrated/elvproposal/internal/llm"
	"github.com/jeet-integrated/elvproposal/internal/navigator"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client to server message types.
const (
	typeAsk      = "ask"
	typeDiagram  = "diagram"
	typeScroll   = "scroll"
	typeNavigate = "navigate"
)

// Server to client message types.
const (
	typeSession       = "session"
	typeMessage       = "message"
	typeBusy          = "busy"
	typeImage         = "image"
	typeActiveSection = "active_section"
	typeScrollTo      = "scroll_to"
	typeError         = "error"
)

// chatRequest is the incoming WebSocket message format.
type chatRequest struct {
	Type    string                   `json:"type"`
	Content string                   `json:"content,omitempty"`
	Section string                   `json:"section,omitempty"`
	Boxes   map[string]navigator.Box `json:"boxes,omitempty"`
}

// chatResponse is the outgoing WebSocket message format.
type chatResponse struct {
	Type      string                   `json:"type"`
	SessionID string                   `json:"session_id,omitempty"`
	Content   string                   `json:"content,omitempty"`
	Message   *renderedMessage         `json:"message,omitempty"`
	History   []renderedMessage        `json:"history,omitempty"`
	Image     *llm.Image               `json:"image,omitempty"`
	Section   string                   `json:"section,omitempty"`
	Scroll    *navigator.ScrollCommand `json:"scroll,omitempty"`
}

type renderedMessage struct {
	consultant.ChatMessage
	HTML string `json:"html"`
}

// wsClient is one websocket connection bound to one session.
type wsClient struct {
	d       *Dashboard
	conn    *websocket.Conn
	session *consultant.Session
	logger  *zap.Logger

	writeMu sync.Mutex
	closed  bool
}

func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, release, err := d.sessions.Attach(r.URL.Query().Get("session"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	defer release()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	c := &wsClient{
		d:       d,
		conn:    conn,
		session: sess,
		logger:  d.logger.With(zap.String("session", sess.ID)),
	}

	unsubMessages := sess.Conversation.Subscribe(func(m consultant.ChatMessage) {
		rm := c.render(m)
		c.send(chatResponse{Type: typeMessage, Message: &rm})
	})
	unsubActive := sess.Navigator.Subscribe(func(active string) {
		c.send(chatResponse{Type: typeActiveSection, Section: active})
	})
	removeSink := sess.Navigator.AddScrollSink(func(cmd navigator.ScrollCommand) {
		c.send(chatResponse{Type: typeScrollTo, Section: cmd.Section, Scroll: &cmd})
	})
	defer func() {
		unsubMessages()
		unsubActive()
		removeSink()
		c.close()
	}()

	c.sendSession()
	c.readLoop()
}

func (c *wsClient) readLoop() {
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var req chatRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			c.sendError("invalid message format")
			continue
		}

		switch req.Type {
		case typeAsk:
			c.handleAsk(req.Content)
		case typeDiagram:
			c.handleDiagram(req.Content)
		case typeScroll:
			c.session.Navigator.OnScroll(req.Boxes)
		case typeNavigate:
			if !c.session.Navigator.NavigateTo(req.Section) {
				c.logger.Debug("navigate to unknown section ignored", zap.String("section", req.Section))
			}
		default:
			c.sendError("unknown message type: " + req.Type)
		}
	}
}

// handleAsk runs the question in the background so that scroll events keep
// flowing while the model answers. Both the question and the answer reach the
// page through the conversation subscription.
func (c *wsClient) handleAsk(question string) {
	if strings.TrimSpace(question) == "" {
		return
	}
	go func() {
		_, err := c.session.Consultant.Ask(context.Background(), question)
		if errors.Is(err, consultant.ErrBusy) {
			c.send(chatResponse{Type: typeBusy, Content: "The consultant is still answering your previous question."})
		}
	}()
}

// handleDiagram generates in the background. A response of type image is
// always sent once the call settles; it carries no image when none was made.
func (c *wsClient) handleDiagram(prompt string) {
	go func() {
		img, err := c.session.Synthesizer.Synthesize(context.Background(), prompt)
		if errors.Is(err, consultant.ErrBusy) {
			c.send(chatResponse{Type: typeBusy, Content: "A diagram is already being generated."})
			return
		}
		c.send(chatResponse{Type: typeImage, Image: img})
	}()
}

func (c *wsClient) sendSession() {
	active, _ := c.session.Navigator.Active()
	msgs := c.session.Conversation.Messages()
	history := make([]renderedMessage, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, c.render(m))
	}
	c.send(chatResponse{
		Type:      typeSession,
		SessionID: c.session.ID,
		History:   history,
		Section:   active,
		Image:     c.session.Synthesizer.LastImage(),
	})
}

func (c *wsClient) render(m consultant.ChatMessage) renderedMessage {
	rm := renderedMessage{ChatMessage: m}
	html, err := c.d.markdown.Render(m.Content)
	if err != nil {
		c.logger.Warn("rendering message failed", zap.Error(err))
		return rm
	}
	rm.HTML = html
	return rm
}

func (c *wsClient) send(resp chatResponse) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.closed {
		return
	}
	if err := c.conn.WriteJSON(resp); err != nil {
		c.logger.Warn("websocket write failed", zap.String("type", resp.Type), zap.Error(err))
	}
}

func (c *wsClient) sendError(message string) {
	c.send(chatResponse{Type: typeError, Content: message})
}

func (c *wsClient) close() {
	c.writeMu.Lock()
	c.closed = true
	c.writeMu.Unlock()
}
