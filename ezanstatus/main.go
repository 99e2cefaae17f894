package main

import (
	"context"
	"os"

	"github.com/mkarci/ezan-tools/internal/statuscli"
)

func main() {
	if err := statuscli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
