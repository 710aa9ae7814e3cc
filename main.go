package main

import (
	"os"

	"github.com/jenkins-release/jenkins-release/cmd"
)

func main() {
	// See cmd/root.go for Execute()
	os.Exit(cmd.ExitCode(cmd.Execute()))
}
