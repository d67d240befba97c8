package main

import "github.com/KaramelBytes/datacleaner-cli/cmd"

func main() {
	cmd.Execute()
}
