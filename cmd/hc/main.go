package main

import "habitchart/cmd/hc/root"

func main() {
	root.Execute()
}
