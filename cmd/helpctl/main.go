package main

import "finitefield.org/dashboard-help/cmd/helpctl/cmd"

func main() {
	cmd.Execute()
}
