// Command stitchplan turns vector drawings into embroidery machine files.
package main

import (
	"fmt"
	"os"

	"honnef.co/go/stitch/cmd/stitchplan/commands"
	"honnef.co/go/stitch/internal/config"
)

func main() {
	envfile := os.Getenv("STITCHPLAN_ENV_FILE")
	var err error
	if envfile == "" {
		err = config.LoadEnv()
	} else {
		err = config.LoadEnv(envfile)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	commands.Execute()
}
