package main

import "github.com/syd18b/mvp-search/cmd"

func main() {
	cmd.Execute()
}
