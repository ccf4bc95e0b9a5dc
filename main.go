package main

import "github.com/aegis-dev/aegis/internal/cli"

func main() {
	cli.Execute()
}
