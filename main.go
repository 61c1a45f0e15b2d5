package main

import (
	"github.com/zt6453928/lunatv-enhanced/cmd"
)

func main() {
	cmd.Execute()
}
