package main

import (
	"log"
	"os"
)

func main() {
	root := newRootCmd()
	root.SetOut(os.Stdout)
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
