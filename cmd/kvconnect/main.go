package main

import (
	"github.com/kvconnect/kvconnect/cmd"
)

func main() {
	cmd.Execute()
}
