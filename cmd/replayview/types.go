package main

// Point mirrors a grid cell in API responses.
type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// FrameSnake is one snake within a replay frame.
type FrameSnake struct {
	Name    string  `json:"name"`
	Alive   bool    `json:"alive"`
	Score   int32   `json:"score"`
	Heading string  `json:"heading"`
	Body    []Point `json:"body"`
}

// Frame is a single recorded tick of a round.
type Frame struct {
	RoundID    string       `json:"round_id"`
	Tick       int32        `json:"tick"`
	Cols       int32        `json:"cols"`
	Rows       int32        `json:"rows"`
	Difficulty int32        `json:"difficulty"`
	State      string       `json:"state"`
	Food       Point        `json:"food"`
	Snakes     []FrameSnake `json:"snakes"`
}

// RoundSummary describes one recorded round for the listing endpoint.
type RoundSummary struct {
	RoundID     string `json:"round_id"`
	Ticks       int64  `json:"ticks"`
	Cols        int32  `json:"cols"`
	Rows        int32  `json:"rows"`
	Difficulty  int32  `json:"difficulty"`
	FinalState  string `json:"final_state"`
	PlayerScore int32  `json:"player_score"`
	AIScore     int32  `json:"ai_score"`
	Outcome     string `json:"outcome"`
}

// RoundsResponse wraps the rounds listing.
type RoundsResponse struct {
	Total  int            `json:"total"`
	Rounds []RoundSummary `json:"rounds"`
}
