package main

import "labeleval/internal/app"

func main() {
	app.Main()
}
