package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aura-studio/universe/server"
	"github.com/sirupsen/logrus"
)

func main() {
	var opts []server.Option
	if p, err := server.FindDefaultConfigFile(); err == nil {
		logrus.WithField("path", p).Info("[Server] Using config")
		opts = append(opts, server.WithConfigFile(p))
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		if err := server.Close(); err != nil {
			logrus.WithError(err).Error("[Server] Close")
		}
	}()

	if err := server.Serve(opts...); err != nil {
		logrus.WithError(err).Fatal("[Server] Serve")
	}
}
