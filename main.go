package main

import (
	"os"

	"github.com/abhisek/dronecbt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
