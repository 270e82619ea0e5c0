package main

import "github.com/ErdhyErnando/moneta/cmd"

func main() {
	cmd.Execute()
}
