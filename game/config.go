package game

// Difficulty is one immutable preset: how fast the grid advances and how
// often the AI deliberately ignores its pathfinding.
type Difficulty struct {
	Label          string
	StepsPerSecond float64
	MistakeChance  float64
}

// Difficulties holds the four fixed presets, keyed by level 1..4.
// SetDifficulty ignores any level outside this table.
var Difficulties = map[int]Difficulty{
	1: {Label: "EASY", StepsPerSecond: 8, MistakeChance: 0.30},
	2: {Label: "NORMAL", StepsPerSecond: 12, MistakeChance: 0.12},
	3: {Label: "HARD", StepsPerSecond: 16, MistakeChance: 0.04},
	4: {Label: "INSANE", StepsPerSecond: 22, MistakeChance: 0.00},
}

// Config carries the compile-time tuning surface of a simulation. Values are
// fixed once the Simulation is constructed.
type Config struct {
	Cols int
	Rows int

	// GrowOnEat is the number of growth credits granted per food item.
	GrowOnEat int

	// FoodBurstCount and DeathBurstCount size the particle bursts emitted on
	// food pickup and snake death.
	FoodBurstCount  int
	DeathBurstCount int
}

// DefaultConfig returns the reference tuning: a 60x40 board, three segments
// of growth per food, and 12/20-particle bursts.
func DefaultConfig() Config {
	return Config{
		Cols:            60,
		Rows:            40,
		GrowOnEat:       3,
		FoodBurstCount:  12,
		DeathBurstCount: 20,
	}
}
