package main

import "github.com/hirewatch/hirewatch/cmd"

func main() {
	cmd.Execute()
}
