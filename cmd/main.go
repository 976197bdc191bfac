package main

import (
	"doctor-finder/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize doctor-finder")
	}

	// Blocks until SIGINT or SIGTERM
	app.Run()
}
