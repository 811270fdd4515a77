package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	echoapi "github.com/hashemmwanes8-maker/uni-ai-coach/apps/api/echo"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/assignment"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/course"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/feedback"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/submission"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/user"
	aisvc "github.com/hashemmwanes8-maker/uni-ai-coach/services/ai"
	emailsvc "github.com/hashemmwanes8-maker/uni-ai-coach/services/email"
	logsvc "github.com/hashemmwanes8-maker/uni-ai-coach/services/logger"
	"github.com/hashemmwanes8-maker/uni-ai-coach/storage/database"
	sqlxrepos "github.com/hashemmwanes8-maker/uni-ai-coach/storage/database/sqlx"
	filestore "github.com/hashemmwanes8-maker/uni-ai-coach/storage/files"
)

func main() {
	conf := core.LoadConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("closing database", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	var fileStore core.FileStorage
	if conf.Storage.B2Bucket != "" {
		fileStore, err = filestore.NewB2Storage(context.Background(), conf.Storage)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up file storage: %v", err), err)
		}
	} else {
		fileStore = filestore.NewDummyStorage()
	}

	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc)
	crsSvc := course.NewService(sqlxrepos.NewCourseRepository(db))
	asgSvc := assignment.NewService(sqlxrepos.NewAssignmentRepository(db), crsSvc)
	subSvc := submission.NewService(sqlxrepos.NewSubmissionRepository(db), asgSvc, usrSvc, fileStore, mailSvc, logger)
	fbSvc := feedback.NewService(aisvc.NewGatewayService(conf.AI), logger)

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(
		&echoapi.Options{
			Address:       conf.Server.Host + ":" + conf.Server.Port,
			AppLogger:     logger,
			UserSvc:       usrSvc,
			CourseSvc:     crsSvc,
			AssignmentSvc: asgSvc,
			SubmissionSvc: subSvc,
			FeedbackSvc:   fbSvc,
		},
		func() { shutdown <- syscall.SIGTERM },
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.Start()
	}()

	select {
	case err = <-serverErrors:
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = app.Stop(ctx); err != nil {
			logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
