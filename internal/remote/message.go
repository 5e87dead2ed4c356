// Package remote exposes a running session over a websocket: snapshots are
// pushed to every connected client and client input is forwarded to the
// session's runner.
package remote

import "github.com/maxwellsmart84/portfolio-2025/internal/game"

// Message is an inbound client message.
//
//	{"type":"key","key":"a","down":true}
//	{"type":"touch","x":0.2,"down":true}
//	{"type":"continue"}
//	{"type":"reset"}
type Message struct {
	Type string  `json:"type"`
	Key  string  `json:"key,omitempty"`
	Down bool    `json:"down,omitempty"`
	X    float64 `json:"x,omitempty"`
}

// Event converts m to a runner event. Unknown types and key messages for
// keys the game does not use report false.
func (m Message) Event() (game.Event, bool) {
	switch m.Type {
	case "key":
		if !game.IsReserved(m.Key) && !game.ContinueKeys[game.NormalizeKey(m.Key)] {
			return game.Event{}, false
		}
		return game.Event{Kind: game.EventKey, Key: m.Key, Down: m.Down}, true
	case "touch":
		return game.Event{Kind: game.EventTouch, Down: m.Down, X: m.X}, true
	case "continue":
		return game.Event{Kind: game.EventContinue}, true
	case "reset":
		return game.Event{Kind: game.EventReset}, true
	}
	return game.Event{}, false
}
