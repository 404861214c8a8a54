package main

import (
	"fmt"
	"os"

	"expenserule/cmd/add"
	"expenserule/cmd/categories"
	"expenserule/cmd/categorize"
	"expenserule/cmd/correct"
	"expenserule/cmd/expenses"
	"expenserule/cmd/export"
	"expenserule/cmd/root"
	"expenserule/cmd/serve"
	"expenserule/cmd/setup"
	"expenserule/cmd/summary"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(correct.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(expenses.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(setup.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
