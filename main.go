package main

import "github.com/GregLauar/Progress-Dashboard/cmd"

func main() {
	cmd.Execute()
}
