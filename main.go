package main

import "github.com/mo-shahab/go-pong-ai/cmd"

func main() {
	cmd.Execute()
}
