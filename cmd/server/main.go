package main

import "speakerbureau/internal/app"

// @title          Speaker Bureau API
// @version        1.0
// @description    Back office and public API for the speaker bureau platform.
// @BasePath       /
func main() {
	app.Run()
}
