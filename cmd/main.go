package main

import (
	"os"

	"github.com/soundprediction/vettore/cmd/vettore"
)

func main() {
	if err := vettore.Execute(); err != nil {
		os.Exit(1)
	}
}
