package main

import "inboxwatch/cmd"

func main() {
	cmd.Execute()
}
