package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/corretor-landing-api/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)

	if err := cli.NewRootCmd(cli.DefaultBuilder).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
