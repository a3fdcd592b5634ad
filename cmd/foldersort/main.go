// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/foldersort/cmd/foldersort/cmd"
)

func main() {
	cmd.Execute()
}
