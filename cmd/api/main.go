package main

import (
	"os"

	"github.com/profilehub/profilehub-go/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
