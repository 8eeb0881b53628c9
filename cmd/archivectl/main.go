package main

import (
	"log"
)

func main() {
	if err := New(defaultClientFactory).Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
