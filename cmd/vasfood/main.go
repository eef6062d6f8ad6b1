package main

import "github.com/vasfood/vasfood-cli/internal/cli"

func main() {
	cli.Execute()
}
