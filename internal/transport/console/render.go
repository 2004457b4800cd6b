package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/nimlines-backend/internal/entity"
)

const (
	presentLine = " | "
	removedLine = " _ "
)

func (that *Console) printBoard(game *entity.Game) {
	fmt.Fprintf(that.out, "Current Round: %d\n", game.Round)
	fmt.Fprintf(that.out, "Current Turn: %s\n", game.Turn)
	fmt.Fprintf(that.out, "Remaining lines: %d\n", game.Remaining)
	fmt.Fprint(that.out, renderBoard(game.Board))
	that.println()
}

// renderBoard - one line per row, labelled from 1.
func renderBoard(board [][]bool) string {
	var sb strings.Builder

	for i, row := range board {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(":")

		for _, present := range row {
			if present {
				sb.WriteString(presentLine)
			} else {
				sb.WriteString(removedLine)
			}
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

func (that *Console) printResult(game *entity.Game) {
	fmt.Fprintf(that.out, "After %d rounds, %s has won the game! Congrats!\n", game.Round, game.Winner)
	that.println()
}

func (that *Console) printResults(results []*entity.Result) {
	if len(results) == 0 {
		return
	}

	that.println("Recent matches:")

	for i, result := range results {
		layout := make([]string, len(result.Layout))
		for j, size := range result.Layout {
			layout[j] = strconv.Itoa(size)
		}

		fmt.Fprintf(that.out, "%d. %s won after %d rounds (rows %s)\n",
			i+1, result.Winner, result.Rounds, strings.Join(layout, ","))
	}

	that.println()
}
