package main

import "github.com/jmehdipour/custgen/cmd"

func main() {
	cmd.Execute()
}
