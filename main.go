package main

import "calculator-engine/cmd"

func main() {
	cmd.Execute()
}
