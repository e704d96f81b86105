package aoc

import "fmt"

func formatTitleID(id uint64) string {
	return fmt.Sprintf("%016x", id)
}
