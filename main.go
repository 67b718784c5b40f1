package main

import "bcds-membership/cmd"

func main() {
	cmd.Execute()
}
