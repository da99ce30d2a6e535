package main

import "github.com/rosterguard/roster-guardian/cmd"

func main() {
	cmd.Execute()
}
