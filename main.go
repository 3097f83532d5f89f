package main

import "github.com/nettrace-lab/ppmtrace/cmd"

func main() {
	cmd.Execute()
}
