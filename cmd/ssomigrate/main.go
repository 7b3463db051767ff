// Package main is the entry point of the ssomigrate CLI.
package main

import "os"

func main() {
	os.Exit(Run())
}
