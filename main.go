package main

import "github.com/vietdv277/asgcheck/cmd"

func main() {
	cmd.Execute()
}
