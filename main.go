package main

import "github.com/staffbook/staffql/cmd"

func main() {
	cmd.Execute()
}
