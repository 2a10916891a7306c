package main

import "github.com/darcyflow/gores/cmd"

func main() {
	cmd.Execute()
}
