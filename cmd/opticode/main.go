package main

import "github.com/opticode-ai/opticode/internal/cli"

func main() {
	cli.Execute()
}
