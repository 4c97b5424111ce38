package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/autopeer-io/edfsizer/cmd/edfsizer/app"
)

func main() {
	app.NewApp().Run()
}
