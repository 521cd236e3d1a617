package main

import "github.com/pfrederiksen/clubmap/internal/cli"

func main() {
	cli.Execute()
}
