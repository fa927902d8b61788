package game

import (
	"encoding/json"
	"fmt"
)

func marshalHistoryEntry(h HistoryEntry) ([]byte, error) {
	return json.Marshal([]any{h.Board, h.Point, int(h.Player)})
}

func unmarshalHistoryEntry(data []byte, h *HistoryEntry) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("history entry: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("history entry: want 3 fields, got %d", len(raw))
	}
	var player int
	if err := json.Unmarshal(raw[0], &h.Board); err != nil {
		return fmt.Errorf("history entry board: %w", err)
	}
	if err := json.Unmarshal(raw[1], &h.Point); err != nil {
		return fmt.Errorf("history entry point: %w", err)
	}
	if err := json.Unmarshal(raw[2], &player); err != nil {
		return fmt.Errorf("history entry player: %w", err)
	}
	h.Player = Player(player)
	return nil
}

// LastPlacement finds the point where previous was empty and current holds a
// stone, i.e. the opponent's last move. Captures it caused are ignored.
func LastPlacement(previous, current Board) (Point, bool) {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if previous[r][c] == Empty && current[r][c] != Empty {
				return Point{Row: r, Col: c}, true
			}
		}
	}
	return Point{}, false
}
