package main

import "github.com/workhub/leave-management/cmd"

func main() {
	cmd.Execute()
}
