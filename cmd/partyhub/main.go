package main

import (
	"partyhub/internal/cli"
)

func main() {
	cli.Execute()
}
