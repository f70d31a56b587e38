package main

import "shireesh.com/nodegen/cmd"

func main() {
	cmd.Execute()
}
