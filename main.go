package main

import "library-catalog/cmd"

func main() {
	cmd.Execute()
}
