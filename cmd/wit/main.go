// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/wit/cmd/wit/cmd"
)

func main() {
	cmd.Execute()
}
