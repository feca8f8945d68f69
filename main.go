package main

import "github.com/5plinkK/ColordleSolver/cmd"

func main() {
	cmd.Execute()
}
