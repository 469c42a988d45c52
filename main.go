package main

import "github.com/alexiusacademia/gopvt/cmd"

func main() {
	cmd.Execute()
}
