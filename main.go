package main

import "redreel/internal/cli"

func main() {
	cli.Main()
}
