package main

import "dailyroutine/cmd/dr/root"

func main() {
	root.Execute()
}
