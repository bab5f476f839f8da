package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	dig_container "github.com/codewithmesree/saiu-learnflow/apps/api/di/dig"
	echoapi "github.com/codewithmesree/saiu-learnflow/apps/api/echo"
	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/user"
	"github.com/codewithmesree/saiu-learnflow/storage"
)

func main() {
	c := dig_container.New()

	must(c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		store storage.Store,
		validate *validator.Validate,
		translator ut.Translator,
		usrSvc *user.Service,
		server *echoapi.Server,
	) {
		// =========================================================================
		// Initialize App

		logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))

		core.InitValidators(validate, translator)
		user.InitValidators(validate, translator)

		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close storage", err)
			}
		}()
		defer logger.Info("Application stopped")

		if conf.Auth.SeedDemoUsers {
			created, err := usrSvc.SeedDemoUsers()
			if err != nil {
				logger.Fatal(fmt.Sprintf("seeding demo users: %v", err), err)
			}
			logger.Info(fmt.Sprintf("%d demo users seeded", len(created)))
		}

		// =========================================================================
		// Start Debug Service
		//
		// /debug/vars - Added to the default mux by importing the expvar package.

		// Expose important info under /debug/vars.
		expvar.NewString("build").Set(conf.Build)
		expvar.NewString("env").Set(conf.Env)
		expvar.NewString("storage").Set(conf.Storage.Driver)

		go func() {
			if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
				logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
			}
		}()

		// =========================================================================
		// Start API Service

		go func() {
			server.Start()
		}()

		// =========================================================================
		// Shutdown

		select {
		case err := <-server.Errors():
			logger.Error(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancel()

			// asking listener to shut down and shed load
			if err := server.Shutdown(ctx); err != nil {
				logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
		}
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
