package manager

import (
	"sort"
	"sync"
	"time"
)

// GameRecord is one finished game
type GameRecord struct {
	SessionID string
	StartTime time.Time
	EndTime   time.Time
	Score     int
}

// Duration of the game
func (r GameRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// StatsManager keeps the games played by this process. Nothing here is
// persisted; only the best score survives a restart.
type StatsManager struct {
	mutex sync.RWMutex
	games []GameRecord
}

func NewStatsManager() *StatsManager {
	return &StatsManager{
		games: make([]GameRecord, 0),
	}
}

// AddGame appends a finished game
func (s *StatsManager) AddGame(sessionID string, score int, startTime, endTime time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.games = append(s.games, GameRecord{
		SessionID: sessionID,
		StartTime: startTime,
		EndTime:   endTime,
		Score:     score,
	})
}

func (s *StatsManager) GamesPlayed() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.games)
}

func (s *StatsManager) AverageScore() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.games) == 0 {
		return 0
	}
	total := 0
	for _, game := range s.games {
		total += game.Score
	}
	return float64(total) / float64(len(s.games))
}

// MedianScore of all games, 0 when none were played
func (s *StatsManager) MedianScore() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.games) == 0 {
		return 0
	}
	scores := make([]int, len(s.games))
	for i, game := range s.games {
		scores[i] = game.Score
	}
	sort.Ints(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		return float64(scores[mid-1]+scores[mid]) / 2
	}
	return float64(scores[mid])
}

func (s *StatsManager) MaxScore() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	maxScore := 0
	for _, game := range s.games {
		if game.Score > maxScore {
			maxScore = game.Score
		}
	}
	return maxScore
}

func (s *StatsManager) AverageDuration() time.Duration {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.games) == 0 {
		return 0
	}
	var total time.Duration
	for _, game := range s.games {
		total += game.Duration()
	}
	return total / time.Duration(len(s.games))
}

// Recent returns up to n of the latest games, oldest first
func (s *StatsManager) Recent(n int) []GameRecord {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if n <= 0 {
		return nil
	}
	start := len(s.games) - n
	if start < 0 {
		start = 0
	}
	out := make([]GameRecord, len(s.games)-start)
	copy(out, s.games[start:])
	return out
}
