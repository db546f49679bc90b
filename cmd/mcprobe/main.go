package main

import "github.com/oshokin/mc-version-probe/cmd/mcprobe/cmd"

func main() {
	cmd.Execute()
}
