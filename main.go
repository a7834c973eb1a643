package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/tourman/internal/tourman/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := tourman(); err != nil {
		logrus.Fatal(err)
	}
}

func tourman() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
