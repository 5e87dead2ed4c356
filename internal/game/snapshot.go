package game

// CoinView is a coin still on the map.
type CoinView struct {
	Index int `json:"index"`
	Pos   Vec `json:"pos"`
}

// DialogueView is the open dialogue box.
type DialogueView struct {
	Beat    int      `json:"beat"`
	Role    BeatRole `json:"role"`
	Title   string   `json:"title"`
	Text    string   `json:"text"`
	Typing  bool     `json:"typing"`
	Closing bool     `json:"closing"`
}

// Snapshot is a read-only copy of everything a renderer needs for a frame.
type Snapshot struct {
	Tick      uint64        `json:"tick"`
	Character Character     `json:"character"`
	Animation string        `json:"animation"`
	Camera    float64       `json:"camera"`
	Coins     []CoinView    `json:"coins"`
	Score     int           `json:"score"`
	Collected int           `json:"collected"`
	Total     int           `json:"total"`
	Phase     string        `json:"phase"`
	Dialogue  *DialogueView `json:"dialogue,omitempty"`
	Particles []Particle    `json:"particles,omitempty"`
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      s.ticks,
		Character: s.character,
		Animation: AnimationFor(s.character.Grounded, s.character.Moving).String(),
		Camera:    s.camera.Offset,
		Score:     s.progression.Score(),
		Collected: s.progression.Collected(),
		Total:     s.progression.Total(),
		Phase:     s.dialogue.Phase().String(),
	}
	for i, c := range s.level.Coins {
		if !s.progression.IsCollected(i) {
			snap.Coins = append(snap.Coins, CoinView{Index: i, Pos: c})
		}
	}
	if beat, entry, ok := s.dialogue.Beat(); ok {
		snap.Dialogue = &DialogueView{
			Beat:    beat,
			Role:    s.level.RoleOf(beat),
			Title:   entry.Title,
			Text:    s.dialogue.Revealed(),
			Typing:  s.dialogue.Phase() == PhaseTyping,
			Closing: s.dialogue.Closing(),
		}
	}
	if len(s.particles) > 0 {
		snap.Particles = append([]Particle(nil), s.particles...)
	}
	return snap
}
