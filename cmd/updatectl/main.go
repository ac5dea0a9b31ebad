package main

import (
	"github.com/updatekit/updatekit/cmd/updatectl/command"
)

func main() {
	command.Execute()
}
