package engine

// Limits bound the search tree. Depth counts from 1 at the root.
type Limits struct {
	// MaxDepth is the depth at which the search stops while fewer than
	// LateGameFrom moves have been played.
	MaxDepth int
	// LateMaxDepth applies from LateGameFrom moves on, when fewer points are
	// left and the tree is narrower.
	LateMaxDepth int
	LateGameFrom int
	// MoveCeiling is the game length; nodes with movesPlayed+depth at or past
	// it are leaves.
	MoveCeiling int
	// StopWhenStuck makes a node a leaf when the side to move has no legal placement.
	StopWhenStuck bool
}

type Config struct {
	Limits        Limits
	LibertyWeight float64
	GroupWeight   float64
	// KomiMagnitude is applied as +komi when the engine plays White and -komi as Black.
	KomiMagnitude float64
	// TiePrefersMove plays the searched move when it scores exactly as well as
	// passing; otherwise a tie passes.
	TiePrefersMove bool
}

func DefaultLimits() Limits {
	return Limits{
		MaxDepth:      4,
		LateMaxDepth:  6,
		LateGameFrom:  11,
		MoveCeiling:   25,
		StopWhenStuck: true,
	}
}

func DefaultConfig() Config {
	return Config{
		Limits:         DefaultLimits(),
		LibertyWeight:  0.5,
		GroupWeight:    0.2,
		KomiMagnitude:  2.5,
		TiePrefersMove: true,
	}
}
