package main

import (
	"os"

	"github.com/SavaKodi/DatexReleaseNotes/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
