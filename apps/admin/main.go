package main

import (
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/user"
	logsvc "github.com/codewithmesree/saiu-learnflow/services/logger"
	"github.com/codewithmesree/saiu-learnflow/storage"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()

	rollbarLogger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags), conf)
	rollbarLogger.Enable(!conf.Debug)
	logger = rollbarLogger

	store, err := storage.Open(conf)
	errAndDie(err)

	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		store:    store,
		usrSvc:   user.NewService(store, user.NewHasher(conf.Auth.HashPasswords)),
		validate: validate,
		out:      os.Stdout,
	}
	err = cli.run(os.Args)
	if cErr := store.Close(); cErr != nil {
		logger.Error("closing storage", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
