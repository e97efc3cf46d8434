package session

// MemoryBest is a BestScoreStore that keeps the score in memory.
type MemoryBest struct {
	score int
}

// Load returns the stored score.
func (m *MemoryBest) Load() (int, error) {
	return m.score, nil
}

// Save keeps score if it is higher than the stored one.
func (m *MemoryBest) Save(score int) error {
	m.score = max(m.score, score)
	return nil
}

var _ BestScoreStore = (*MemoryBest)(nil)
