package engine

// Config holds the rule parameters of a game. It travels inside State so a
// restored snapshot plays by the same rules.
type Config struct {
	VictoryPoints     int  `json:"victory_points" yaml:"victory_points"`
	LongestRoadMin    int  `json:"longest_road_min" yaml:"longest_road_min"`
	LongestRoadBonus  int  `json:"longest_road_bonus" yaml:"longest_road_bonus"`
	SettlementSpacing int  `json:"settlement_spacing" yaml:"settlement_spacing"` // edge hops that must stay clear around a structure
	Omens             bool `json:"omens" yaml:"omens"`
	OmenHandLimit     int  `json:"omen_hand_limit" yaml:"omen_hand_limit"`
}

func DefaultConfig() Config {
	return Config{
		VictoryPoints:     10,
		LongestRoadMin:    6,
		LongestRoadBonus:  2,
		SettlementSpacing: 2,
		Omens:             false,
		OmenHandLimit:     5,
	}
}
