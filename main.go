package main

import (
	"example.com/acgl/services/inventory/cmd"
)

func main() {
	cmd.Execute()
}
