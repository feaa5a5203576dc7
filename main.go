package main

import "github.com/admarket/clocksim/cmd"

func main() {
	cmd.Execute()
}
