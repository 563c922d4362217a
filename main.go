package main

import "github.com/qrislens/qrislens-cli/cmd"

func main() {
	cmd.Execute()
}
