package main

import (
	"fmt"
	"os"

	"github.com/spencer-p/coastprep/pkg/dean"
	"github.com/spencer-p/coastprep/pkg/shoreline"
)

func main() {
	path := "pt_coords.txt"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	s, err := shoreline.ReadFile(path)
	if err != nil {
		fmt.Printf("failed to read shoreline: %v\n", err)
		return
	}
	if err := s.Validate(); err != nil {
		fmt.Printf("bad shoreline: %v\n", err)
		return
	}

	minX, _, maxX, _ := s.Bounds()
	fmt.Printf("shoreline: %d points spanning %.0f m\n", len(s), maxX-minX)

	for _, h := range dean.Default.Sample(1500, 31) {
		fmt.Printf("%f ", h)
	}
	fmt.Println()
}
