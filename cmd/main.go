package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fptkit/paraco/cmd/root"
)

func main() {
	rootCmd := root.NewRootCmd()
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
