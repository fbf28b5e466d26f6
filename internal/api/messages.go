package api

import "matchroom-server/internal/core"

// Error reasons surfaced to the offending connection only.
const (
	reasonBadJSON      = "BAD_JSON"
	reasonRoomNotFound = "ROOM_NOT_FOUND"
	reasonRoomFull     = "ROOM_FULL"
	reasonUnknownType  = "UNKNOWN_TYPE"
	reasonInternal     = "INTERNAL"
)

// clientMessage covers every inbound type; unused fields stay zero.
type clientMessage struct {
	Type string `json:"type"`
	Nick string `json:"nick"`
	Code string `json:"code"`
	Text string `json:"text"`
}

type errorMsg struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// seatAssignedMsg answers the connection that just took a seat
// (room_created, joined).
type seatAssignedMsg struct {
	Type    string             `json:"type"`
	Code    string             `json:"code"`
	Seat    int                `json:"seat"`
	Players []*core.PlayerView `json:"players"`
}

// seatEventMsg is broadcast to a room when a seat changes
// (player_joined, ready, player_left).
type seatEventMsg struct {
	Type    string             `json:"type"`
	Seat    int                `json:"seat"`
	Nick    string             `json:"nick,omitempty"`
	Code    string             `json:"code"`
	Players []*core.PlayerView `json:"players"`
}

type startMsg struct {
	Type    string             `json:"type"`
	Code    string             `json:"code"`
	Players []*core.PlayerView `json:"players"`
}

type chatMsg struct {
	Type string `json:"type"`
	Seat int    `json:"seat"`
	Text string `json:"text"`
	Ts   int64  `json:"ts"`
}

type pongMsg struct {
	Type string `json:"type"`
	Ts   int64  `json:"ts"`
}
