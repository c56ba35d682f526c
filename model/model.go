// Package model holds the values exchanged with the game referee and their
// JSON encoding.
//
// Every quantity on the wire is a uint32. Negative numbers, fractions and
// values above 2^32-1 are rejected when decoding.
package model

// WorldInfo is the session handshake, sent once before the first turn.
type WorldInfo struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// Location is an (x, y) grid coordinate, encoded as a 2-element array.
type Location [2]uint32

func (l Location) X() uint32 { return l[0] }
func (l Location) Y() uint32 { return l[1] }

type RobotInfo struct {
	Location Location `json:"location"`
	HP       uint32   `json:"hp"`
	PlayerID uint32   `json:"player_id"`
	RobotID  uint32   `json:"robot_id"`
}

// WorldState is sent once per turn. Local is the robot this process
// controls; it may or may not also be listed in Robots.
type WorldState struct {
	Turn   uint32      `json:"turn"`
	Robots []RobotInfo `json:"robots"`
	Local  RobotInfo   `json:"local"`
}
