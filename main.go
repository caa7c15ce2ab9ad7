package main

import (
	"github.com/esummer9/mykeyword/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		panic(err)
	}
}
