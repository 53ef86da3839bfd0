package main

import "github.com/notargets/aerocase/cmd"

func main() {
	cmd.Execute()
}
