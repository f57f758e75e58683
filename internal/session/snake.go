package session

import (
	"fmt"
	"strings"
)

// snakeGame is the spec's other required addition: a small turn-based
// minigame reachable from the game state, one tick per input line rather
// than a real-time loop (sessions are driven by ReadLine, not a ticker).
const (
	snakeWidth  = 16
	snakeHeight = 10
)

type point struct{ x, y int }

type snakeScratch struct {
	body      []point // body[0] is the head
	dir       point
	food      point
	score     int
	tickSeed  int
}

type snakeGameState struct{}

func (snakeGameState) enter(m *Manager, c *ConnectedClient) {
	scratch := &snakeScratch{
		body:  []point{{snakeWidth / 2, snakeHeight / 2}},
		dir:   point{1, 0},
		food:  point{snakeWidth / 4, snakeHeight / 4},
		score: 0,
	}
	c.Scratch = scratch
	c.Send("\n--- Snake ---\nw/a/s/d to steer, q to quit. Any other key just ticks forward.\n")
	c.Send(renderSnake(scratch))
}

func (snakeGameState) handle(m *Manager, c *ConnectedClient, line string) State {
	scratch, ok := c.Scratch.(*snakeScratch)
	if !ok {
		return StateAuthenticated
	}

	key := strings.ToLower(strings.TrimSpace(line))
	if key == "q" || key == "quit" {
		c.Send(fmt.Sprintf("Final score: %d\n", scratch.score))
		return StateAuthenticated
	}

	switch key {
	case "w", "up":
		if scratch.dir != (point{0, 1}) {
			scratch.dir = point{0, -1}
		}
	case "s", "down":
		if scratch.dir != (point{0, -1}) {
			scratch.dir = point{0, 1}
		}
	case "a", "left":
		if scratch.dir != (point{1, 0}) {
			scratch.dir = point{-1, 0}
		}
	case "d", "right":
		if scratch.dir != (point{-1, 0}) {
			scratch.dir = point{1, 0}
		}
	}

	head := scratch.body[0]
	next := point{head.x + scratch.dir.x, head.y + scratch.dir.y}

	if next.x < 0 || next.x >= snakeWidth || next.y < 0 || next.y >= snakeHeight || hitsSelf(scratch.body, next) {
		c.Send(fmt.Sprintf("You crashed! Final score: %d\n", scratch.score))
		return StateAuthenticated
	}

	scratch.body = append([]point{next}, scratch.body...)
	if next == scratch.food {
		scratch.score++
		scratch.food = nextFood(scratch)
	} else {
		scratch.body = scratch.body[:len(scratch.body)-1]
	}

	c.Send(renderSnake(scratch))
	return StateSnakeGame
}

func (snakeGameState) exit(m *Manager, c *ConnectedClient) {}

func hitsSelf(body []point, p point) bool {
	for _, b := range body {
		if b == p {
			return true
		}
	}
	return false
}

// nextFood deterministically walks the grid looking for a free cell,
// avoiding the non-deterministic math/rand dependency in a hot input path.
func nextFood(s *snakeScratch) point {
	s.tickSeed++
	for i := 0; i < snakeWidth*snakeHeight; i++ {
		candidate := point{(s.tickSeed + i*7) % snakeWidth, (s.tickSeed + i*3) % snakeHeight}
		if !hitsSelf(s.body, candidate) {
			return candidate
		}
	}
	return point{0, 0}
}

func renderSnake(s *snakeScratch) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d\n", s.score)
	for y := 0; y < snakeHeight; y++ {
		for x := 0; x < snakeWidth; x++ {
			p := point{x, y}
			switch {
			case p == s.body[0]:
				b.WriteByte('@')
			case hitsSelf(s.body[1:], p):
				b.WriteByte('o')
			case p == s.food:
				b.WriteByte('*')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
