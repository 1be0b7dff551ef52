package main

import "github.com/geoscience-tools/geochemtools/cmd"

func main() {
	cmd.Execute()
}
