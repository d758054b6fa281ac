package main

import "rating-manager/cmd"

func main() {
	cmd.Execute()
}
