package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/kolah/routekit/internal/cli"
)

func main() {
	cmd := cli.RootCmd()
	err := cmd.Execute()
	if err != nil {
		fmt.Println(err.Error())
		for _, hint := range errors.GetAllHints(err) {
			fmt.Println("hint:", hint)
		}
		os.Exit(1)
	}
}
