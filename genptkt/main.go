package main

import "github.com/redhat-et/zos-passticket/genptkt/cmd"

func main() {
	cmd.Execute()
}
