package main

import "bazzangee/cmd/api-server/command"

func main() {
	command.Execute()
}
