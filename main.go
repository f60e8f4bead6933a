package main

import "github.com/moamenhredeen/oagent/cmd"

func main() {
	cmd.Execute()
}
