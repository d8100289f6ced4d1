package main

import "github.com/nhle/mailgen/internal/cli"

func main() {
	cli.Execute()
}
