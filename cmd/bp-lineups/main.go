package main

import "github.com/pfrederiksen/bp-lineups/internal/cli"

func main() {
	cli.Execute()
}
