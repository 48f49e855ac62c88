package main

import (
	"github.com/calebmcg/deadeye/internal/cli"
)

func main() {
	cli.Execute()
}
