package main

import (
	"github.com/mj1618/switcher/cmd"
	_ "github.com/mj1618/switcher/internal/platform/x11"
)

func main() {
	cmd.Execute()
}
