package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"matchroom-server/internal/auth"
	"matchroom-server/internal/core"
)

// WsHandler upgrades the connection and runs its read loop. A valid login
// token pins the connection id to the player id; everyone else gets a fresh
// uuid. Leaving the loop, however it happens, runs the disconnect path.
func (s *Server) WsHandler(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	if token := r.URL.Query().Get("token"); token != "" {
		if playerId, err := auth.CheckToken(token); err == nil {
			id = playerId.String()
		}
	}

	socket, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("upgrade failed")
		return
	}

	client := s.hub.Register(socket, id)
	defer s.disconnect(client)

	for {
		_, data, err := socket.ReadMessage()
		if err != nil {
			break
		}
		s.dispatch(client, data)
	}
}

// dispatch parses one inbound message and routes it by its type field.
// Parse failures and unknown types answer the sender and mutate nothing.
func (s *Server) dispatch(c *core.Client, data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.reply(c, errorMsg{"error", reasonBadJSON})
		return
	}

	switch msg.Type {
	case "create_room":
		s.handleCreate(c, msg)
	case "join_room":
		s.handleJoin(c, msg)
	case "ready":
		s.handleReady(c)
	case "chat":
		s.handleChat(c, msg)
	case "ping":
		s.reply(c, pongMsg{"pong", time.Now().UnixMilli()})
	default:
		s.reply(c, errorMsg{"error", reasonUnknownType})
	}
}

func (s *Server) handleCreate(c *core.Client, msg clientMessage) {
	nick := s.sanitizeNick(msg.Nick)

	// one seat per connection: drop any current binding first
	s.leaveCurrentSeat(c)

	room, err := s.registry.CreateRoom()
	if err != nil {
		log.Error().Err(err).Msg("room creation failed")
		s.reply(c, errorMsg{"error", reasonInternal})
		return
	}

	seat, err := room.Assign(c.ID, nick, c)
	if err != nil {
		log.Error().Err(err).Str("code", room.Code).Msg("seat assignment failed on fresh room")
		s.reply(c, errorMsg{"error", reasonInternal})
		return
	}

	c.Bind(room.Code, seat)
	s.reply(c, seatAssignedMsg{"room_created", room.Code, seat, room.Snapshot()})
}

func (s *Server) handleJoin(c *core.Client, msg clientMessage) {
	nick := s.sanitizeNick(msg.Nick)

	room, found := s.registry.Get(msg.Code)
	if !found {
		s.reply(c, errorMsg{"error", reasonRoomNotFound})
		return
	}

	s.leaveCurrentSeat(c)

	seat, err := room.Assign(c.ID, nick, c)
	if err != nil {
		if errors.Is(err, core.ErrRoomFull) {
			s.reply(c, errorMsg{"error", reasonRoomFull})
		} else {
			s.reply(c, errorMsg{"error", reasonRoomNotFound})
		}
		return
	}

	c.Bind(room.Code, seat)
	s.reply(c, seatAssignedMsg{"joined", room.Code, seat, room.Snapshot()})
	s.hub.Broadcast(room, seatEventMsg{"player_joined", seat, nick, room.Code, room.Snapshot()})
}

func (s *Server) handleReady(c *core.Client) {
	code, seat, bound := c.Binding()
	if !bound {
		return
	}
	room, found := s.registry.Get(code)
	if !found {
		return
	}

	started := room.MarkReady(seat)
	s.hub.Broadcast(room, seatEventMsg{Type: "ready", Seat: seat, Code: code, Players: room.Snapshot()})

	if started {
		players := room.Snapshot()
		s.hub.Broadcast(room, startMsg{"start", code, players})
		log.Info().Str("code", code).Msg("match started")
		go core.RecordMatch(code, players)
	}
}

func (s *Server) handleChat(c *core.Client, msg clientMessage) {
	code, seat, bound := c.Binding()
	if !bound {
		return
	}
	room, found := s.registry.Get(code)
	if !found {
		return
	}

	s.hub.Broadcast(room, chatMsg{"chat", seat, msg.Text, time.Now().UnixMilli()})
}

// disconnect runs on every connection close, clean or liveness-forced.
func (s *Server) disconnect(c *core.Client) {
	s.hub.Unregister(c)
	s.leaveCurrentSeat(c)
	log.Info().Str("conn_id", c.ID).Msg("conn destroyed")
}

// leaveCurrentSeat vacates the connection's seat, tells the remaining
// occupants, and removes the room once its last seat empties.
func (s *Server) leaveCurrentSeat(c *core.Client) {
	code, seat, bound := c.Binding()
	if !bound {
		return
	}
	c.ClearBinding()

	room, found := s.registry.Get(code)
	if !found {
		return
	}

	nick, empty, occupied := room.Vacate(seat)
	if occupied {
		s.hub.Broadcast(room, seatEventMsg{"player_left", seat, nick, code, room.Snapshot()})
	}
	if empty {
		s.registry.RemoveIfEmpty(code)
	}
}

func (s *Server) reply(c *core.Client, msg any) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("reply marshal failed")
		return
	}
	c.Send(payload)
}

// sanitizeNick coerces the display name: placeholder when empty, clamped to
// the configured rune length otherwise.
func (s *Server) sanitizeNick(nick string) string {
	if nick == "" {
		return "guest"
	}
	if utf8.RuneCountInString(nick) > s.cfg.NickMaxLen {
		runes := []rune(nick)
		return string(runes[:s.cfg.NickMaxLen])
	}
	return nick
}
