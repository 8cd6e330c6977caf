// Package main is the plantool command itself.
package main

import (
	"log"
	"os"

	"github.com/ringbot/autoseq/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
