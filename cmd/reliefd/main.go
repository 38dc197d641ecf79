package main

import "github.com/reliefops/logistics-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
