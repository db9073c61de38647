package main

import "github.com/Makepad-fr/todolist/internal/cli"

func main() {
	// Exit codes: 0 ok, 1 error, 2 usage.
	cli.Main()
}
