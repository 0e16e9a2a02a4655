// cmd/gandictl/main.go
package main

import "github.com/gandikediye-afk/gandi-command-center/internal/cli"

func main() {
	cli.Initialize()
	cli.Execute()
}
