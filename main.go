package main

import "github.com/Pjt727/soc/cmd"

func main() {
	cmd.Execute()
}
