package main

import (
	"os"

	"parkcross/cmd/parkcross/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
