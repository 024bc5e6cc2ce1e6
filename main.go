package main

import "jelly/internal/cli"

func main() {
	cli.Execute()
}
