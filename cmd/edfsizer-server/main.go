package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/autopeer-io/edfsizer/cmd/edfsizer-server/app"
)

func main() {
	app.NewApp().Run()
}
