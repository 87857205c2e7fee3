package main

import "warehouse-inventory/cli"

func main() {
	cli.Execute()
}
