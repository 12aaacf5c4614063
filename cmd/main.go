package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verso-cms/verso/cmd/service"
)

func main() {
	root := &cobra.Command{
		Use:   "verso",
		Short: "versioned content resource store",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("empty command")
		},
	}

	root.AddCommand(service.NewCommand(), service.NewInstallCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
