package main

import "github.com/nilmonster/ldgv/cmd"

func main() {
	cmd.Execute()
}
