package main

import "github.com/pranshuparmar/procmon/internal/app"

func main() {
	app.Execute()
}
