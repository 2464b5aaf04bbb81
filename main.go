// Countdown - a countdown-day tracker with reminder notifications.
package main

import (
	"os"

	"github.com/kihana2077/countdown/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
