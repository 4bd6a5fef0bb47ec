package main

import "are-we-consistent-yet/cmd"

func main() {
	cmd.Execute()
}
