package game

import (
	"strconv"

	"littlego/internal/domain/game"
	"littlego/internal/domain/sgf"
	ownErrors "littlego/internal/errors"
)

const engineName = "littlego"

// PrepareSgfFile rebuilds the game from its decision log. The first record's
// previous board becomes the setup position; between decisions the
// opponent's move is recovered by diffing the boards, and an unchanged board
// is an opponent pass.
func PrepareSgfFile(gameID string, records []game.DecisionRecord) (sgf.SGF, error) {
	if len(records) == 0 {
		return sgf.SGF{}, ownErrors.ErrGameNotFound
	}
	first := records[0]

	root := sgf.NewNode()
	root.Add("FF", "4")
	root.Add("GM", "1")
	root.Add("SZ", strconv.Itoa(game.BoardSize))
	if first.Player == game.Black {
		root.Add("PB", engineName)
		root.Add("PW", "opponent")
	} else {
		root.Add("PB", "opponent")
		root.Add("PW", engineName)
	}
	root.Add("DT", first.CreatedAt.Format("2006-01-02"))
	root.Add("KM", strconv.FormatFloat(abs(first.Komi), 'f', 1, 64))
	root.Add("C", "littlego game "+gameID)

	setup, err := game.ParseBoard(first.Previous)
	if err != nil {
		return sgf.SGF{}, err
	}
	addSetup(root, setup)

	tree := &sgf.GameTree{Nodes: []sgf.Node{root}}

	for i, record := range records {
		previous, err := game.ParseBoard(record.Previous)
		if err != nil {
			return sgf.SGF{}, err
		}
		current, err := game.ParseBoard(record.Board)
		if err != nil {
			return sgf.SGF{}, err
		}
		move, err := game.ParseMove(record.Move)
		if err != nil {
			return sgf.SGF{}, err
		}

		opponent := record.Player.Opponent().Letter()
		if p, ok := game.LastPlacement(previous, current); ok {
			tree.AppendMove(opponent, game.PlaceMove(p.Row, p.Col).SGFCoordinates())
		} else if i > 0 || !current.IsEmpty() {
			tree.AppendMove(opponent, "")
		}

		tree.AppendMove(record.Player.Letter(), move.SGFCoordinates())
	}

	return sgf.SGF{Root: tree}, nil
}

func addSetup(node sgf.Node, b game.Board) {
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			coords := game.PlaceMove(r, c).SGFCoordinates()
			switch b[r][c] {
			case game.BlackStone:
				node.Add("AB", coords)
			case game.WhiteStone:
				node.Add("AW", coords)
			}
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
