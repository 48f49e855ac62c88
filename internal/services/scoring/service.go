package scoring

import "github.com/calebmcg/deadeye/internal/model"

// Scoring parameters
const (
	hitPoints         = 10
	distanceBonus     = 5
	distanceThreshold = 10.0 // bonus applies strictly above this
	comboBonus        = 5
	comboRun          = 3
)

// Result holds the outcome of scoring a session's shot sequence
type Result struct {
	Score  int
	Hits   int
	Misses int
}

// Service computes session scores. It is pure: the same ordered input always
// produces the same result, and no state is kept between calls.
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// ScoreSession folds over events in the order given and tallies the score.
// Callers are responsible for passing events in ascending timestamp order.
//
// Each hit is worth 10 points, plus 5 when the shot distance exceeds 10,
// plus 5 at every third consecutive hit. A miss scores nothing and resets
// the consecutive-hit counter to zero.
func (s *Service) ScoreSession(events []model.ShotEvent) Result {
	var result Result
	consecutiveHits := 0

	for _, e := range events {
		if !e.Hit {
			result.Misses++
			consecutiveHits = 0
			continue
		}

		result.Hits++
		consecutiveHits++
		result.Score += hitPoints
		if e.Distance > distanceThreshold {
			result.Score += distanceBonus
		}
		if consecutiveHits%comboRun == 0 {
			result.Score += comboBonus
		}
	}

	return result
}

// Interface for dependency injection
type ServiceInterface interface {
	ScoreSession(events []model.ShotEvent) Result
}

var _ ServiceInterface = (*Service)(nil)
