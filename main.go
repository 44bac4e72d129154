package main

import "github.com/saveenstha/repopulse/cmd"

func main() {
	cmd.Execute()
}
