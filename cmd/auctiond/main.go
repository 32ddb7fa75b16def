package main

import "github.com/LeJamon/goAuctiond/internal/cli"

func main() {
	cli.Execute()
}
