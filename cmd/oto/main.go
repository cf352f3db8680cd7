package main

import "github.com/OpenTraceLab/OpenTraceOverlay/cmd/oto/cmd"

func main() {
	cmd.Execute()
}
