package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the palisade ASCII banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	s1 := termenv.String("               _ _               _").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("  _ __   __ _ | (_)___  __ _  __| | ___").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(" | '_ \\ / _` || | / __|/ _` |/ _` |/ _ \\").Foreground(p.Color("#c084fc"))
	s4 := termenv.String(" | |_) | (_| || | \\__ \\ (_| | (_| |  __/").Foreground(p.Color("#e879f9"))
	s5 := termenv.String(" | .__/ \\__,_||_|_|___/\\__,_|\\__,_|\\___|").Foreground(p.Color("#f472b6"))
	s6 := termenv.String(" |_|").Foreground(p.Color("#fb7185"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
