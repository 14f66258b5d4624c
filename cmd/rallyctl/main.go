package main

import (
	"github.com/courtside/rallybot/internal/cli"
)

func main() {
	cli.Execute()
}
