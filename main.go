package main

import "skillhub.com/skillhub/cmd"

func main() {
	cmd.Execute()
}
