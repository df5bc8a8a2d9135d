package main

import "volleycal/internal/cli"

func main() {
	cli.Execute()
}
