package main

import "github.com/claude/trainup/internal/cli"

func main() {
	cli.Execute()
}
