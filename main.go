package main

import "github.com/user/draftcheck/cmd"

func main() {
	cmd.Execute()
}
