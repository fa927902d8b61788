package repo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"littlego/internal/domain/game"
	ownErrors "littlego/internal/errors"
)

// ReadInput parses the turn input: the player on the first line, then five
// rows of the previous board and five rows of the current board.
func ReadInput(r io.Reader) (game.Player, game.Position, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return 0, game.Position{}, fmt.Errorf("failed to read input: %w", err)
	}

	if len(lines) < 1+2*game.BoardSize {
		return 0, game.Position{}, &ownErrors.InvalidPositionError{
			Reason: fmt.Sprintf("input has %d lines, want %d", len(lines), 1+2*game.BoardSize),
		}
	}

	n, err := strconv.Atoi(lines[0])
	if err != nil || (n != int(game.Black) && n != int(game.White)) {
		return 0, game.Position{}, &ownErrors.InvalidPositionError{Reason: fmt.Sprintf("bad player %q", lines[0])}
	}

	previous, err := game.ParseRows(lines[1 : 1+game.BoardSize])
	if err != nil {
		return 0, game.Position{}, err
	}
	current, err := game.ParseRows(lines[1+game.BoardSize : 1+2*game.BoardSize])
	if err != nil {
		return 0, game.Position{}, err
	}
	return game.Player(n), game.Position{Current: current, Previous: previous}, nil
}

func ReadInputFile(path string) (game.Player, game.Position, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, game.Position{}, err
	}
	defer f.Close()
	return ReadInput(f)
}

// WriteOutput writes the move as "PASS" or "row,col".
func WriteOutput(w io.Writer, move game.Move) error {
	_, err := io.WriteString(w, move.String())
	return err
}

func WriteOutputFile(path string, move game.Move) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOutput(f, move); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
