package main

import (
	"fmt"
	"os"

	"github.com/ManivannanSenthilrajan/issueboard/internal/fundcli"
)

func main() {
	if err := fundcli.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "fundflow:", err)
		os.Exit(1)
	}
}
