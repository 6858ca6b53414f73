// Package packets defines the arena server's event names and payloads.
package packets

import "github.com/Faultbox/maze-arena/pkg/math"

// Server -> client events
const (
	GetFinish        = "getFinish"        // FinishInfo
	GetPlayer        = "getPlayer"        // PlayerInfo for the local player
	JoinPlayer       = "joinPlayer"       // PlayerInfo for a new remote player
	GetActivePlayers = "getActivePlayers" // []PlayerInfo already in the arena
	GetPlayers       = "getPlayers"       // []PlayerPosition
	GetWinner        = "getWinner"        // string id or name
	DisconnectPlayer = "disconnectPlayer" // string id
)

// Client -> server events
const (
	Join              = "join"              // string local identifier
	SetPlayer         = "setPlayer"         // Vector3
	SetPlayerPosition = "setPlayerPosition" // Vector3
)

// Vector3 is a position on the wire.
type Vector3 struct {
	X float32 `json:"x" msgpack:"x"`
	Y float32 `json:"y" msgpack:"y"`
	Z float32 `json:"z" msgpack:"z"`
}

// Vec converts to a math vector.
func (v Vector3) Vec() math.Vec3 {
	return math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// FromVec converts a math vector for sending.
func FromVec(v math.Vec3) Vector3 {
	return Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// PlayerInfo describes a player on join.
type PlayerInfo struct {
	ID       string  `json:"id" msgpack:"id"`
	Position Vector3 `json:"position" msgpack:"position"`
	Color    string  `json:"color" msgpack:"color"`
}

// PlayerPosition is a periodic position update for one player.
type PlayerPosition struct {
	ID       string  `json:"id" msgpack:"id"`
	Position Vector3 `json:"position" msgpack:"position"`
}

// FinishInfo places the finish marker.
type FinishInfo struct {
	Position Vector3 `json:"position" msgpack:"position"`
	Color    string  `json:"color" msgpack:"color"`
}
