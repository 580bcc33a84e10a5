package main

import "flutter-buildcfg/internal/cli"

func main() {
	cli.Execute()
}
