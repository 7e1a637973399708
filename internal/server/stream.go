package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/treeutil/internal/walker"
)

// streamRequest is the incoming WebSocket message format. A connection may
// carry any number of requests; they are served one after another.
type streamRequest struct {
	ID               string `json:"id"` // echoed on every reply; generated when empty
	Path             string `json:"path"`
	Recurse          bool   `json:"recurse"`
	IncludeHidden    bool   `json:"include_hidden"`
	TraverseSymlinks bool   `json:"traverse_symlinks"`
	Type             string `json:"type"`
}

// streamMessage is the outgoing WebSocket message format.
type streamMessage struct {
	Type  string         `json:"type"` // "entry", "done" or "error"
	ID    string         `json:"id"`
	Entry *walker.Record `json:"entry,omitempty"`
	Count int            `json:"count,omitempty"`
	Error string         `json:"error,omitempty"`
}

func (s *Server) handleListStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warnf("websocket read: %v", err)
			}
			return
		}

		var req streamRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendError(conn, "", "invalid message format")
			continue
		}
		if req.ID == "" {
			req.ID = uuid.New().String()
		}
		if !s.stream(conn, req) {
			return
		}
	}
}

// stream sends every entry matched by req followed by a done message. It
// returns false once the connection can no longer be written to.
func (s *Server) stream(conn *websocket.Conn, req streamRequest) bool {
	opts := walker.Options{
		Recurse:          req.Recurse,
		IncludeHidden:    req.IncludeHidden,
		TraverseSymlinks: req.TraverseSymlinks,
	}
	if req.Type != "" {
		t, err := walker.ParseEntryType(req.Type)
		if err != nil {
			return s.sendError(conn, req.ID, err.Error())
		}
		opts.Type = t
	}

	path, err := s.resolvePath(req.Path)
	if err != nil {
		return s.sendError(conn, req.ID, err.Error())
	}
	seq, err := s.walker.Enumerate(path, opts)
	if err != nil {
		return s.sendError(conn, req.ID, err.Error())
	}

	s.log.Debugf("Streaming '%s' for request %s", path, req.ID)
	count := 0
	for e := range seq {
		rec := e.Record()
		if err := conn.WriteJSON(streamMessage{Type: "entry", ID: req.ID, Entry: &rec}); err != nil {
			s.log.Warnf("websocket write: %v", err)
			return false
		}
		count++
	}
	if err := conn.WriteJSON(streamMessage{Type: "done", ID: req.ID, Count: count}); err != nil {
		s.log.Warnf("websocket write: %v", err)
		return false
	}
	return true
}

func (s *Server) sendError(conn *websocket.Conn, id, message string) bool {
	if err := conn.WriteJSON(streamMessage{Type: "error", ID: id, Error: message}); err != nil {
		s.log.Warnf("websocket write error: %v", err)
		return false
	}
	return true
}
