package main

import "github.com/mercadinho/gestao/cmd"

func main() {
	cmd.Execute()
}
