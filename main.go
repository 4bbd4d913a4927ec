package main

import "github.com/iburimskiy/dotpager/internal/cli"

func main() {
	cli.Execute()
}
