package main

import "github.com/shazabdullakc/Attendence-monitoring-system/cmd"

func main() {
	cmd.Execute()
}
