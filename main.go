package main

import "github.com/mittwald/mittload/cmd"

func main() {
	cmd.Execute()
}
