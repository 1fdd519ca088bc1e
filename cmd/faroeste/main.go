package main

import (
	"os"

	"github.com/faroeste-lang/faroeste/cmd/faroeste/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
