package main

import "github.com/frahmantamala/bakery-hub/cmd"

func main() {
	cmd.Execute()
}
