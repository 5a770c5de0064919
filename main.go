package main

import "github.com/yeremiapane/retail-manager/commands"

func main() {
	commands.Execute()
}
