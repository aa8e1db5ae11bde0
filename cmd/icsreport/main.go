package main

import "icsreport/internal/cli"

func main() {
	cli.Execute()
}
