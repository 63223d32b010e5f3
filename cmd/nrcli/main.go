package main

import "github.com/numberrush/numberrush/internal/cli"

func main() {
	cli.Execute()
}
