/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ubuntoo-net/ubuntoo/cmd"

func main() {
	cmd.Execute()
}
