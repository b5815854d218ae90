package main

import "github.com/iksnae/chat-composer/cmd"

func main() {
	cmd.Execute()
}
