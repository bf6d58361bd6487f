/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/marewang/final-bnn/cmd"

func main() {
	cmd.Execute()
}
