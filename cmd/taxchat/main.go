package main

import (
	"os"

	"taxchat/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
