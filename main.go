package main

import "github.com/jsphweid/fretnot/cmd"

func main() {
	cmd.Execute()
}
