package main

import "github.com/josephlewis42/ezh/cmd"

func main() {
	cmd.Execute()
}
