package main

import (
	cmd "github.com/fontdex/fontdex/cmd/fontdex"
)

func main() {
	cmd.Execute()
}
