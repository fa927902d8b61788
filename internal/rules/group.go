// Package rules implements stone groups, liberties, captures and move legality
// for the 5x5 board.
package rules

import "littlego/internal/domain/game"

type visitSet [game.BoardSize][game.BoardSize]bool

// HasLiberty reports whether the group containing the stone at p touches an
// empty point. The fill stops at the first liberty it finds.
func HasLiberty(b game.Board, p game.Point) bool {
	color := b.At(p)
	var visited visitSet
	visited[p.Row][p.Col] = true
	stack := []game.Point{p}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, adj := range game.Neighbors(n) {
			cell := b.At(adj)
			if cell == game.Empty {
				return true
			}
			if cell == color && !visited[adj.Row][adj.Col] {
				visited[adj.Row][adj.Col] = true
				stack = append(stack, adj)
			}
		}
	}
	return false
}

// Group returns the connected same-colored component containing p.
func Group(b game.Board, p game.Point) []game.Point {
	var visited visitSet
	return collectGroup(b, p, &visited)
}

func collectGroup(b game.Board, p game.Point, visited *visitSet) []game.Point {
	color := b.At(p)
	visited[p.Row][p.Col] = true
	stack := []game.Point{p}
	group := make([]game.Point, 0, 4)

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		group = append(group, n)

		for _, adj := range game.Neighbors(n) {
			if b.At(adj) == color && !visited[adj.Row][adj.Col] {
				visited[adj.Row][adj.Col] = true
				stack = append(stack, adj)
			}
		}
	}
	return group
}

// GroupLiberties returns the distinct empty points adjacent to the group at p.
func GroupLiberties(b game.Board, p game.Point) []game.Point {
	var seen visitSet
	liberties := make([]game.Point, 0, 4)
	for _, stone := range Group(b, p) {
		for _, adj := range game.Neighbors(stone) {
			if b.At(adj) == game.Empty && !seen[adj.Row][adj.Col] {
				seen[adj.Row][adj.Col] = true
				liberties = append(liberties, adj)
			}
		}
	}
	return liberties
}

// Groups lists every group of the player's stones, discovered in row-major order.
func Groups(b game.Board, player game.Player) [][]game.Point {
	stone := player.Stone()
	var visited visitSet
	groups := make([][]game.Point, 0)
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			if b[r][c] == stone && !visited[r][c] {
				groups = append(groups, collectGroup(b, game.Point{Row: r, Col: c}, &visited))
			}
		}
	}
	return groups
}

// LargestGroup is the size of the player's biggest group, 0 without stones.
func LargestGroup(b game.Board, player game.Player) int {
	largest := 0
	for _, g := range Groups(b, player) {
		if len(g) > largest {
			largest = len(g)
		}
	}
	return largest
}

// CountLiberties counts the empty points adjacent to at least one of the
// player's stones; a point shared by several stones counts once.
func CountLiberties(b game.Board, player game.Player) int {
	stone := player.Stone()
	var seen visitSet
	count := 0
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			if b[r][c] != stone {
				continue
			}
			for _, adj := range game.Neighbors(game.Point{Row: r, Col: c}) {
				if b.At(adj) == game.Empty && !seen[adj.Row][adj.Col] {
					seen[adj.Row][adj.Col] = true
					count++
				}
			}
		}
	}
	return count
}
