package main

import "github.com/stemerlini/fusion-plots/cmd"

func main() {
	cmd.Execute()
}
