package main

import "iResearch/server/internal/bootstrap"

func main() {
	bootstrap.Run()
}
