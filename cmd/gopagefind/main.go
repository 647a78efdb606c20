package main

import "gopagefind/internal/cli"

func main() {
	cli.Execute()
}
