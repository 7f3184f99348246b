package main

import "github.com/iksnae/session-hooks/cmd"

func main() {
	cmd.Execute()
}
