package main

import "github.com/josemlopez/Write-Properly/internal/cli"

func main() {
	cli.Execute()
}
