package main

import "habitexe/cmd/habit/root"

func main() {
	root.Execute()
}
