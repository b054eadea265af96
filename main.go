package main

import "github.com/fiffeek/hyprvirtualdisplays/cmd"

func main() {
	cmd.Execute()
}
