package main

import (
	"os"

	"github.com/jumpypanter/serverforms/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
