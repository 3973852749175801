package main

import (
	"nairaland-client/cmd/nairaland/commands"
	"nairaland-client/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
