package main

import "shiftstat/cmd"

func main() {
	cmd.Execute()
}
