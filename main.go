package main

import "github.com/jonasrenault/luniix/cmd"

func main() {
	cmd.Execute()
}
