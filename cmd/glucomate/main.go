package main

import "github.com/glucomate-org/glucomate/cmd/glucomate/command"

func main() {
	command.Execute()
}
