package main

import "github.com/theirongolddev/wealthview/cmd"

func main() {
	cmd.Execute()
}
