package main

import "github.com/shieldtechhub/droidcheck/droidcheck/cmd"

func main() {
	cmd.Execute()
}
