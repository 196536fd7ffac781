package main

import (
	"os"

	"github.com/abdulsamadj00-tech/Abdul-Samad/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
