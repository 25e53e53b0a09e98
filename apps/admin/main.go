package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core"
	"github.com/kelasdev/kelas/core/content"
	"github.com/kelasdev/kelas/core/course"
	"github.com/kelasdev/kelas/core/onboarding"
	appfs "github.com/kelasdev/kelas/fs"
	emailsvc "github.com/kelasdev/kelas/services/email"
	logsvc "github.com/kelasdev/kelas/services/logger"
	"github.com/kelasdev/kelas/storage"
)

func main() {
	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(std, conf)
	defer logger.Close()

	// set up DB
	store, err := storage.Open(context.Background(), conf, false)
	if err != nil {
		logger.Fatal("opening storage", err)
	}
	defer func() { _ = store.Close() }()

	// set up services
	translator := core.NewTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)
	content.InitValidators(validate, translator)
	course.InitValidators(validate, translator)

	templates, err := core.ParseEmailTemplates(appfs.EmailTemplates(), conf)
	if err != nil {
		logger.Fatal("parsing email templates", err)
	}
	mailSvc := emailsvc.NewService(conf, templates, logger)

	// start CLI
	cli := newCommandLine(
		conf,
		store,
		course.NewService(store.Courses, validate),
		onboarding.NewService(store.Onboarding, mailSvc, conf),
	)
	if err := cli.run(os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			std.Printf("\nerror: %s\n", err)
		}
		_ = store.Close()
		logger.Close()
		os.Exit(1)
	}
}
