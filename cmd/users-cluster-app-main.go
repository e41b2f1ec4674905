package main

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/users-cluster-app/cluster"
	"github.com/jamesrr39/users-cluster-app/userstore/dal"
	"github.com/jamesrr39/users-cluster-app/userwebserver"
	"github.com/spf13/afero"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	logger *logpkg.Logger
	app    *kingpin.Application
)

func main() {
	logger = logpkg.NewLogger(os.Stderr, logpkg.LogLevelInfo)
	app = kingpin.New("users-cluster-app", "in-memory users API, served by a set of worker processes sharing one port")

	setupServeCommand()
	setupWorkerCommand()

	kingpin.MustParse(app.Parse(os.Args[1:]))
}

func setupServeCommand() {
	cmd := app.Command("serve", "start the worker processes, and restart them if they exit").Default()
	port := cmd.Flag("port", "port for the workers to listen on").Envar("PORT").Default("3000").Int()
	workerCount := cmd.Flag("workers", "number of worker processes").Envar("WORKERS").Default(strconv.Itoa(runtime.NumCPU())).Int()
	seedFile := cmd.Flag("seed-file", "path to a JSON file with the users every worker starts with. If left blank, a built-in set of 3 users is used").String()
	restartDelay := cmd.Flag("restart-delay", "how long to wait before restarting a worker that exited").Default("1s").Duration()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		executablePath, err := os.Executable()
		if nil != err {
			return errorsx.Wrap(err)
		}

		supervisor := &cluster.Supervisor{
			Logger:       logger,
			WorkerCount:  *workerCount,
			RestartDelay: *restartDelay,
			NewWorkerCmd: func(workerID int) *exec.Cmd {
				args := []string{
					"worker",
					"--port", strconv.Itoa(*port),
					"--replica-id", strconv.Itoa(workerID),
				}
				if *seedFile != "" {
					args = append(args, "--seed-file", *seedFile)
				}

				workerCmd := exec.Command(executablePath, args...)
				workerCmd.Stdout = os.Stdout
				workerCmd.Stderr = os.Stderr
				return workerCmd
			},
		}

		signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runErr := supervisor.Run(signalCtx)
		if nil != runErr {
			return runErr
		}

		return nil
	})
}

func setupWorkerCommand() {
	cmd := app.Command("worker", "run a single worker process. Normally started by the serve command")
	port := cmd.Flag("port", "port to listen on").Envar("PORT").Default("3000").Int()
	seedFile := cmd.Flag("seed-file", "path to a JSON file with the users to start with. If left blank, a built-in set of 3 users is used").String()
	replicaID := cmd.Flag("replica-id", "name of this worker, sent back in the "+userwebserver.ReplicaIDHeader+" response header. Defaults to the process ID").String()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		users := dal.DefaultSeedUsers()
		if *seedFile != "" {
			var err error
			users, err = dal.LoadSeedUsers(afero.NewOsFs(), *seedFile)
			if nil != err {
				return err
			}
		}

		id := *replicaID
		if id == "" {
			id = strconv.Itoa(os.Getpid())
		}

		signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		listener, listenErr := cluster.Listen(signalCtx, ":"+strconv.Itoa(*port))
		if nil != listenErr {
			return listenErr
		}

		logger.Info("worker %s starting with %d users", id, len(users))

		server := userwebserver.NewUserWebServer(logger, dal.NewUserStore(users), id)

		serveErr := cluster.ServeWorker(signalCtx, logger, listener, server)
		if nil != serveErr {
			return serveErr
		}

		return nil
	})
}
