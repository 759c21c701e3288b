package main

import "github.com/phrazzld/algodeck/cmd/algodeck/cmd"

func main() {
	cmd.Execute()
}
