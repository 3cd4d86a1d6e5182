package main

import "github.com/mcoot/activities-client/internal/cli"

func main() {
	cli.Execute()
}
