package main

import "github.com/alexiusacademia/gocrane/cmd"

func main() {
	cmd.Execute()
}
