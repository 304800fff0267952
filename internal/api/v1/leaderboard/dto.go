package leaderboard

type Query struct {
	Timeframe string `form:"timeframe" binding:"omitempty,oneof=all month week"`
	Category  string `form:"category"`
}
