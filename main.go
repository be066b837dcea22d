package main

import "github.com/KaramelBytes/cubeloom-cli/cmd"

func main() {
	cmd.Execute()
}
