package main

import "trailhead/cmd/trailhead-cli/cmd"

func main() {
	cmd.Execute()
}
