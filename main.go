package main

import "github.com/mattercrypt/mattercrypt/cmd"

func main() {
	cmd.Execute()
}
