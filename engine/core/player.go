package core

// PlayerStats holds the player's score and lives across levels
type PlayerStats struct {
	Score     int
	Lives     int
	HighScore int
	Kills     int
	Deaths    int
}

func NewPlayerStats(lives int) *PlayerStats {
	return &PlayerStats{Lives: lives}
}

// Credit adds points and lifts the high score if it was passed
func (s *PlayerStats) Credit(points int) {
	s.Score += points
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
}

// LoseLife records a death and returns the lives left
func (s *PlayerStats) LoseLife() int {
	s.Deaths++
	if s.Lives > 0 {
		s.Lives--
	}
	return s.Lives
}
