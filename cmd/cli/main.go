package main

import "github.com/hyunw/bboard/internal/cli"

func main() {
	cli.Execute()
}
