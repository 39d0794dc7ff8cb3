package main

import (
	"fmt"
	"os"

	"fastsearch/cmd/fastsearch/cmd"
	"fastsearch/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}
