package main

import "github.com/xvierd/countdown/cmd"

func main() {
	cmd.Execute()
}
