package query

import (
	"errors"
	"fmt"

	"github.com/vytor/rankedversus/internal/models"
)

// Field names an OpponentResult attribute that criteria can refer to.
type Field string

const (
	FieldTotal               Field = "total"
	FieldWins                Field = "wins"
	FieldDraws               Field = "draws"
	FieldLosses              Field = "losses"
	FieldWinCompletions      Field = "win_completions"
	FieldLossCompletions     Field = "loss_completions"
	FieldWinCompletionsTime  Field = "win_completions_time"
	FieldLossCompletionsTime Field = "loss_completions_time"
	FieldWinAverage          Field = "win_average"
	FieldLossAverage         Field = "loss_average"
	FieldEloChange           Field = "elo_change"
	FieldOpponent            Field = "opponent"
)

// accessor reads a numeric field; ok is false when the value is null.
type accessor func(*models.OpponentResult) (v int64, ok bool)

func count(get func(*models.OpponentResult) int64) accessor {
	return func(r *models.OpponentResult) (int64, bool) { return get(r), true }
}

func nullable(get func(*models.OpponentResult) *int64) accessor {
	return func(r *models.OpponentResult) (int64, bool) {
		if v := get(r); v != nil {
			return *v, true
		}
		return 0, false
	}
}

// accessors holds every comparable field. FieldOpponent is deliberately absent.
var accessors = map[Field]accessor{
	FieldTotal:               count(func(r *models.OpponentResult) int64 { return r.Total }),
	FieldWins:                count(func(r *models.OpponentResult) int64 { return r.Wins }),
	FieldDraws:               count(func(r *models.OpponentResult) int64 { return r.Draws }),
	FieldLosses:              count(func(r *models.OpponentResult) int64 { return r.Losses }),
	FieldWinCompletions:      count(func(r *models.OpponentResult) int64 { return r.WinCompletions }),
	FieldLossCompletions:     count(func(r *models.OpponentResult) int64 { return r.LossCompletions }),
	FieldWinCompletionsTime:  count(func(r *models.OpponentResult) int64 { return r.WinCompletionsTime }),
	FieldLossCompletionsTime: count(func(r *models.OpponentResult) int64 { return r.LossCompletionsTime }),
	FieldWinAverage:          nullable(func(r *models.OpponentResult) *int64 { return r.WinAverage }),
	FieldLossAverage:         nullable(func(r *models.OpponentResult) *int64 { return r.LossAverage }),
	FieldEloChange:           count(func(r *models.OpponentResult) int64 { return r.EloChange }),
}

// ErrNotComparable is returned for fields that exist but cannot be compared.
var ErrNotComparable = errors.New("field is not comparable")

func lookup(f Field) (accessor, error) {
	if acc, ok := accessors[f]; ok {
		return acc, nil
	}
	if f == FieldOpponent {
		return nil, fmt.Errorf("%w: %s", ErrNotComparable, f)
	}
	return nil, fmt.Errorf("unknown field %q", string(f))
}
