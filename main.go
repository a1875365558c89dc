package main

import (
	"log"

	"github.com/handleme/gallery/cmd"
	"github.com/handleme/gallery/config"
)

func main() {
	log.Printf("gallery %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
