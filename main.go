package main

import (
	"os"

	"github.com/gridwatt/stationuptime/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
