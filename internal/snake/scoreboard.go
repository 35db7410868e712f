package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// HighScoreStore is the durable home of the high score.
// storage.FileStore is the production implementation.
//
// SaveIfHigher stores score only if it beats the stored value and returns
// the record held afterwards, which may be higher than score when another
// writer shares the store.
type HighScoreStore interface {
	Load() (int, error)
	SaveIfHigher(score int) (int, error)
}

// ScoreboardConfig places the score line on the display.
type ScoreboardConfig struct {
	Position core.Vec
	Look     core.Appearance
}

// Scoreboard tracks the current score and the best score ever reached.
type Scoreboard struct {
	sprite
	store HighScoreStore
	score int
	high  int
}

// NewScoreboard loads the high score from store and draws the score line.
// A store that cannot be read is fatal: there is no fallback to zero.
func NewScoreboard(d core.Display, store HighScoreStore, cfg ScoreboardConfig) (*Scoreboard, error) {
	high, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("snake: cannot load high score: %w", err)
	}

	look := cfg.Look
	look.Shape = core.ShapeText
	sb := &Scoreboard{
		sprite: spawn(d, cfg.Position, look),
		store:  store,
		high:   high,
	}
	sb.refresh()
	return sb, nil
}

// Increment adds one point.
func (sb *Scoreboard) Increment() {
	sb.score++
	sb.refresh()
}

// OnCollision ends the round: a beaten high score is taken over and
// persisted, then the score drops to zero. When the store already holds a
// better record set elsewhere, that record is adopted instead. A failed
// write is returned, but the in-memory high score and the reset stand
// either way.
func (sb *Scoreboard) OnCollision() error {
	var err error
	if sb.score > sb.high {
		sb.high = sb.score
		record, saveErr := sb.store.SaveIfHigher(sb.score)
		if saveErr != nil {
			err = fmt.Errorf("snake: cannot persist high score %d: %w", sb.score, saveErr)
		} else if record > sb.high {
			sb.high = record
		}
	}
	sb.score = 0
	sb.refresh()
	return err
}

// Observe raises the high score to a value reached elsewhere, such as
// another session sharing the same store. It never lowers it.
func (sb *Scoreboard) Observe(high int) {
	if high <= sb.high {
		return
	}
	sb.high = high
	sb.refresh()
}

func (sb *Scoreboard) Score() int { return sb.score }

func (sb *Scoreboard) HighScore() int { return sb.high }

// Text returns the score line as drawn.
func (sb *Scoreboard) Text() string {
	return fmt.Sprintf("Score: %d | High Score: %d", sb.score, sb.high)
}

func (sb *Scoreboard) refresh() {
	sb.display.ClearText(sb.id)
	sb.display.WriteText(sb.id, sb.Text())
}
