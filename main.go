package main

import "xpost/cmd"

func main() {
	cmd.Execute()
}
