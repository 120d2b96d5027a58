package main

import "github.com/theirongolddev/billtrack/cmd"

func main() {
	cmd.Execute()
}
