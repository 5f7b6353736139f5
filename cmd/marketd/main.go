package main

import "github.com/nvalette/marketd/internal/cli"

func main() {
	cli.Execute()
}
