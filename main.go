package main

import "github.com/veridata-labs/airlens-cli/cmd"

func main() {
	cmd.Execute()
}
