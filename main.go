package main

import "github.com/krobus00/invest-orders/cmd"

func main() {
	cmd.Execute()
}
