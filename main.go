package main

import (
	"os"

	"github.com/rizkyprovidervisa/visa-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
