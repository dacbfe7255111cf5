// Package models contains data structures for parsed DartConnect match reports
package models

// Side identifies which column of the report table a throw belongs to.
// It is positional (left or right of the round column in the export), not a
// stable team identity; the roster package re-maps sides to real teams.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Leg formats as they appear in "Game N.M - ..." headers.
const (
	Format501     = "501"
	FormatCricket = "cricket"
)

// Throw is one side's turn within one round of a leg.
type Throw struct {
	Round  int
	Side   Side
	Player string

	// 501: points this turn and points left after it.
	Score     int
	Remaining int

	// Cricket: raw hit notation (e.g. "T20, S19x2") and decoded mark count.
	Hit   string
	Marks int

	// IsCheckout marks the 501 throw that brought Remaining to zero.
	// CheckoutDarts is 1-3 when the row carried a DO(n) annotation, 3 otherwise.
	IsCheckout    bool
	CheckoutDarts int

	// IsClosingThrow marks the cricket throw that closed the leg.
	IsClosingThrow bool

	// OpponentDidNotThrow is set on a final-round throw when the report has
	// no entry for the other side (the leg ended before their turn).
	OpponentDidNotThrow bool
}

// PlayerLegStats aggregates one player's totals within one leg.
type PlayerLegStats struct {
	Side  Side
	Darts int

	// 501
	Points       int
	ThreeDartAvg float64

	// Cricket
	Marks int
	MPR   float64
}

// WinnerResult is the outcome of cricket winner inference. Determined is
// false when neither the summary scores nor a closing throw identify a
// side; callers must branch on it rather than assume a default.
type WinnerResult struct {
	Side       Side
	Determined bool
}

// Leg is one game-to-zero (501) or game-to-closeout (Cricket) contest.
type Leg struct {
	LegNumber int
	Format    string // Format501 or FormatCricket
	IsDoubles bool

	Throws      []Throw
	PlayerStats map[string]PlayerLegStats

	// Winner is populated for cricket legs only.
	Winner WinnerResult

	// CheckoutDarts is the annotated dart count of the finishing 501 throw,
	// 0 when the report carried no DO(n) marker.
	CheckoutDarts int
}

// Game groups the legs declared under one "Game N.x" header run. Callers
// call this a "set".
type Game struct {
	GameNumber int
	Type       string // declared label, e.g. "501 SIDO"; each leg's own format is authoritative
	IsDoubles  bool
	Legs       []*Leg
}

// MatchSection is one complete head-to-head match extracted from an export
// file. Team labels come from a best-effort heuristic and may be empty.
type MatchSection struct {
	MatchIndex int
	HomeTeam   string
	AwayTeam   string
	IsDoubles  bool
	Games      []*Game
}
