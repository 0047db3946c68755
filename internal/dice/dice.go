// Package dice implements the dice-notation evaluator used by every check
// in the engine. Rollers are seedable so combat and skill resolution can be
// replayed deterministically in tests.
package dice

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/tavernkeep/gm-engine/internal/errors"
)

// Notation format: NdX with an optional arithmetic modifier, e.g. "2d6+3",
// "1d20", "3d6*2". Division is integer division.
var notationRegex = regexp.MustCompile(`^(\d+)d(\d+)(?:([+\-*/])(\d+))?$`)

// Expr is a parsed dice expression.
type Expr struct {
	Count    int
	Sides    int
	Op       byte // '+', '-', '*', '/' or 0 when no modifier
	Modifier int
}

// String reassembles the canonical notation for the expression.
func (e Expr) String() string {
	if e.Op == 0 {
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
	return fmt.Sprintf("%dd%d%c%d", e.Count, e.Sides, e.Op, e.Modifier)
}

// Parse parses dice notation into an Expr. Malformed notation, non-positive
// counts or sides, and division by zero are rejected with InvalidArgument.
func Parse(notation string) (Expr, error) {
	matches := notationRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(notation)))
	if matches == nil {
		return Expr{}, errors.InvalidArgumentf("invalid dice notation: %s (expected format: NdX or NdX+M)", notation)
	}

	count, err := strconv.Atoi(matches[1])
	if err != nil {
		return Expr{}, errors.InvalidArgumentf("invalid dice count in notation: %s", notation)
	}
	sides, err := strconv.Atoi(matches[2])
	if err != nil {
		return Expr{}, errors.InvalidArgumentf("invalid die size in notation: %s", notation)
	}
	if count <= 0 || sides <= 0 {
		return Expr{}, errors.InvalidArgumentf("dice count and size must be positive: %s", notation)
	}

	expr := Expr{Count: count, Sides: sides}
	if matches[3] != "" {
		expr.Op = matches[3][0]
		expr.Modifier, err = strconv.Atoi(matches[4])
		if err != nil {
			return Expr{}, errors.InvalidArgumentf("invalid modifier in notation: %s", notation)
		}
		if expr.Op == '/' && expr.Modifier == 0 {
			return Expr{}, errors.InvalidArgumentf("division by zero in notation: %s", notation)
		}
	}

	return expr, nil
}

// Result is a fully evaluated roll, keeping individual faces for audit and
// degree-of-success narration.
type Result struct {
	Expr      Expr
	Faces     []int
	DiceTotal int
	Total     int
}

// Roller evaluates dice expressions against a pseudo-random source. It is
// safe for concurrent use. Randomness here decides game outcomes, not
// secrets, so a fast non-cryptographic source is deliberate.
type Roller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a roller with an unpredictable seed for production play.
func New() *Roller {
	return &Roller{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded creates a fully deterministic roller for reproducible tests.
func NewSeeded(seed uint64) *Roller {
	return &Roller{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Roll parses and evaluates notation in one step.
func (r *Roller) Roll(notation string) (*Result, error) {
	expr, err := Parse(notation)
	if err != nil {
		return nil, err
	}
	return r.RollExpr(expr), nil
}

// RollExpr evaluates an already-parsed expression.
func (r *Roller) RollExpr(expr Expr) *Result {
	faces := make([]int, expr.Count)
	total := 0
	for i := range faces {
		faces[i] = r.die(expr.Sides)
		total += faces[i]
	}

	result := &Result{Expr: expr, Faces: faces, DiceTotal: total, Total: total}
	switch expr.Op {
	case '+':
		result.Total += expr.Modifier
	case '-':
		result.Total -= expr.Modifier
	case '*':
		result.Total *= expr.Modifier
	case '/':
		result.Total /= expr.Modifier
	}

	return result
}

// D20 rolls a single twenty-sided die.
func (r *Roller) D20() int {
	return r.die(20)
}

// D6 rolls a single six-sided die.
func (r *Roller) D6() int {
	return r.die(6)
}

// TwoD6 rolls two six-sided dice and returns the sum. The background tables
// in the rulebook index on this roll.
func (r *Roller) TwoD6() int {
	return r.die(6) + r.die(6)
}

// Chance returns true with probability p (clamped to [0, 1]). Loot tables
// roll against this.
func (r *Roller) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() < p
}

func (r *Roller) die(sides int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(sides) + 1
}
