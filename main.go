package main

import "gameshelf/cmd"

func main() {
	cmd.Execute()
}
