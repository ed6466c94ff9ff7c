package main

import "github.com/mwong94/goutils/internal/cli"

func main() {
	cli.Execute()
}
