package tests

import (
	"log"
	"os"
	"testing"

	. "github.com/hashemmwanes8-maker/uni-ai-coach/apps/api/echo"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/assignment"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/course"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/feedback"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/submission"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/user"
	aisvc "github.com/hashemmwanes8-maker/uni-ai-coach/services/ai"
	emailsvc "github.com/hashemmwanes8-maker/uni-ai-coach/services/email"
	logsvc "github.com/hashemmwanes8-maker/uni-ai-coach/services/logger"
	dummydb "github.com/hashemmwanes8-maker/uni-ai-coach/storage/database/dummy"
	filestore "github.com/hashemmwanes8-maker/uni-ai-coach/storage/files"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

func TestMain(m *testing.M) {
	if err := os.Setenv("ENV", "TEST"); err != nil {
		log.Fatalf("os.Setenv(): %v", err)
	}
	core.LoadConfig()
	// exact error bodies are asserted; debug mode would replace them
	core.Conf.Debug = false

	os.Exit(m.Run())
}

// testEnv wires a fresh in-memory stack behind the server; each test gets its
// own so state never leaks between tests.
type testEnv struct {
	app     Server
	aiMock  *aisvc.MockService
	usrRepo user.Repository
	crsRepo course.Repository
	asgRepo assignment.Repository
	subRepo submission.Repository
}

func setup(t *testing.T) *testEnv {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}

	env := &testEnv{
		aiMock:  aisvc.NewMockService("Solid work overall.", nil),
		usrRepo: dummydb.NewUserRepository(db),
		crsRepo: dummydb.NewCourseRepository(db),
		asgRepo: dummydb.NewAssignmentRepository(db),
		subRepo: dummydb.NewSubmissionRepository(db),
	}

	logger := logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
	mailSvc := emailsvc.NewConsoleServiceMock()
	fileStore := filestore.NewDummyStorage()

	usrSvc := user.NewServiceMock(env.usrRepo, mailSvc)
	crsSvc := course.NewService(env.crsRepo)
	asgSvc := assignment.NewService(env.asgRepo, crsSvc)
	subSvc := submission.NewService(env.subRepo, asgSvc, usrSvc, fileStore, mailSvc, logger)
	fbSvc := feedback.NewService(env.aiMock, logger)

	env.app = NewServer(
		&Options{
			DisableReqLogs: true,
			AppLogger:      logger,
			UserSvc:        usrSvc,
			CourseSvc:      crsSvc,
			AssignmentSvc:  asgSvc,
			SubmissionSvc:  subSvc,
			FeedbackSvc:    fbSvc,
		},
		func() {}, /* signalShutdown */
	)
	return env
}
