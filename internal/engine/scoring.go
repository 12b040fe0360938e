package engine

// ScoreEntry holds the victory-point breakdown for one player.
type ScoreEntry struct {
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	Settlements int    `json:"settlements"`
	Cities      int    `json:"cities"`
	LongestRoad int    `json:"longest_road"`
	RoadLength  int    `json:"road_length"`
	Omens       int    `json:"omens"`
	Total       int    `json:"total"`
}

// Standings returns the score breakdown of every player in seat order.
func Standings(s *State) []ScoreEntry {
	entries := make([]ScoreEntry, len(s.Players))
	for i, p := range s.Players {
		e := ScoreEntry{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			RoadLength: LongestRoad(s, p.ID),
			Total:      p.VictoryPoints,
		}
		for _, v := range s.Vertices {
			if v.Structure == nil || v.Structure.Owner != p.ID {
				continue
			}
			if v.Structure.Kind == City {
				e.Cities++
			} else {
				e.Settlements++
			}
		}
		if s.LongestRoadHolder == p.ID {
			e.LongestRoad = s.Config.LongestRoadBonus
		}
		// Whatever the board does not explain came from Omen cards.
		e.Omens = e.Total - e.Settlements - 2*e.Cities - e.LongestRoad
		entries[i] = e
	}
	return entries
}

// checkVictory ends the game once someone reaches the target. The player
// whose turn it is wins ties, then seat order decides.
func (s *State) checkVictory() []Event {
	if s.Phase == PhaseEnded {
		return nil
	}
	seats := make([]int, 0, len(s.Players))
	seats = append(seats, s.CurrentPlayer)
	for i := range s.Players {
		if i != s.CurrentPlayer {
			seats = append(seats, i)
		}
	}
	for _, i := range seats {
		if i < 0 || i >= len(s.Players) {
			continue
		}
		p := s.Players[i]
		if p.VictoryPoints < s.Config.VictoryPoints {
			continue
		}
		s.Winner = p.ID
		s.Phase = PhaseEnded
		s.RobberPending = false
		return []Event{
			{Type: EventPhaseChange, Data: map[string]any{"phase": PhaseEnded}},
			{Type: EventGameOver, Player: p.ID, Data: map[string]any{"scores": Standings(s)}},
		}
	}
	return nil
}
