package models

// OpponentResult is the running head-to-head record against one opponent.
// Averages are derived from the completion sums and are nil when there is
// nothing to average.
type OpponentResult struct {
	Total               int64  `json:"total"`
	Wins                int64  `json:"wins"`
	Draws               int64  `json:"draws"`
	Losses              int64  `json:"losses"`
	WinCompletions      int64  `json:"win_completions"`
	LossCompletions     int64  `json:"loss_completions"`
	WinCompletionsTime  int64  `json:"win_completions_time"`
	LossCompletionsTime int64  `json:"loss_completions_time"`
	WinAverage          *int64 `json:"win_average"`
	LossAverage         *int64 `json:"loss_average"`
	EloChange           int64  `json:"elo_change"`
	Opponent            Player `json:"opponent"`
}
