// Command ttsetup checks a Tiny Tapeout project descriptor and prepares the
// files the hardening flow consumes.
package main

import (
	"log"
	"os"

	"github.com/nightconcept/tt-setup/internal/cli/setup"
)

func main() {
	app := setup.NewApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
