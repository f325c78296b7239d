package present

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableWriter renders views as terminal tables. Colours follow the terminal
// behind w and disappear when w is not a terminal.
type TableWriter struct {
	w      io.Writer
	header lipgloss.Style
	cell   lipgloss.Style
	tones  map[Tone]lipgloss.Style
}

func NewTableWriter(w io.Writer) *TableWriter {
	r := lipgloss.NewRenderer(w)
	cell := r.NewStyle().Padding(0, 1)
	return &TableWriter{
		w:      w,
		header: cell.Bold(true),
		cell:   cell,
		tones: map[Tone]lipgloss.Style{
			ToneWins:   cell.Foreground(lipgloss.Color("2")),
			ToneLosses: cell.Foreground(lipgloss.Color("1")),
			ToneDraws:  cell.Foreground(lipgloss.Color("8")),
		},
	}
}

func (t *TableWriter) render(headers []string, rows [][]string, toneCol int, tones []Tone) error {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.header
			}
			if col == toneCol && row >= 0 && row < len(tones) {
				return t.tones[tones[row]]
			}
			return t.cell
		})
	_, err := fmt.Fprintln(t.w, tbl.Render())
	return err
}

// Player writes the tracked user's banner line.
func (t *TableWriter) Player(p PlayerHeader, loaded int64, opponents int) error {
	_, err := fmt.Fprintf(t.w, "%s (%s) - %d matches against %d opponents\n", p.Nickname, p.Rating, loaded, opponents)
	return err
}

// Opponents writes one row per card.
func (t *TableWriter) Opponents(cards []OpponentCard) error {
	rows := make([][]string, 0, len(cards))
	tones := make([]Tone, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{
			c.Nickname,
			strconv.FormatInt(c.Total, 10),
			strconv.FormatInt(c.Record.Wins, 10),
			strconv.FormatInt(c.Record.Draws, 10),
			strconv.FormatInt(c.Record.Losses, 10),
			c.WinAverage,
			c.LossAverage,
			c.Elo,
		})
		tones = append(tones, c.EloTone)
	}
	return t.render([]string{"OPPONENT", "TOTAL", "W", "D", "L", "AVG WIN", "AVG LOSS", "ELO"}, rows, 7, tones)
}

// Matches writes one row per drill-down match.
func (t *TableWriter) Matches(rows []MatchRow) error {
	cells := make([][]string, 0, len(rows))
	tones := make([]Tone, 0, len(rows))
	for _, r := range rows {
		finish := "completed"
		if r.Forfeited {
			finish = "forfeited"
		}
		cells = append(cells, []string{strconv.FormatInt(r.ID, 10), r.Time, string(r.Tone), finish, r.URL})
		tones = append(tones, r.Tone)
	}
	return t.render([]string{"MATCH", "TIME", "RESULT", "FINISH", "LINK"}, cells, 1, tones)
}

// Leaderboard writes the ranked leaderboard.
func (t *TableWriter) Leaderboard(season int, players []PlayerHeader) error {
	rows := make([][]string, 0, len(players))
	for i, p := range players {
		rows = append(rows, []string{strconv.Itoa(i + 1), p.Nickname, p.Rating})
	}
	if _, err := fmt.Fprintf(t.w, "Season %d\n", season); err != nil {
		return err
	}
	return t.render([]string{"#", "PLAYER", "RATING"}, rows, -1, nil)
}
