package main

import "github.com/thebestschool/school_site/cli"

func main() {
	cli.Execute()
}
