package cluster

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/semaphore"
)

// DefaultStopTimeout is used when a Supervisor has no StopTimeout set
const DefaultStopTimeout = 15 * time.Second

// Supervisor runs a fixed number of worker processes and restarts any that exit.
// The workers do not share any state with each other or with the supervisor.
type Supervisor struct {
	Logger      *logpkg.Logger
	WorkerCount int
	// RestartDelay is how long to wait before restarting a worker that exited
	RestartDelay time.Duration
	// StopTimeout is how long a worker has to exit after being interrupted, before it is killed
	StopTimeout time.Duration
	// NewWorkerCmd creates the command for a worker process. It is called again for each restart.
	NewWorkerCmd func(workerID int) *exec.Cmd
}

// Run starts the workers and keeps them running until ctx is done. It returns once every worker has stopped.
func (s *Supervisor) Run(ctx context.Context) errorsx.Error {
	if s.WorkerCount < 1 {
		return errorsx.Errorf("expected at least 1 worker, but got %d", s.WorkerCount)
	}

	s.Logger.Info("supervisor (pid %d) starting %d workers", os.Getpid(), s.WorkerCount)

	workersSema := semaphore.NewSemaphore(uint(s.WorkerCount))
	for workerID := 1; workerID <= s.WorkerCount; workerID++ {
		workersSema.Add()
		go func(workerID int) {
			defer workersSema.Done()
			s.superviseWorker(ctx, workerID)
		}(workerID)
	}
	workersSema.Wait()

	s.Logger.Info("supervisor (pid %d) stopped all workers", os.Getpid())
	return nil
}

func (s *Supervisor) superviseWorker(ctx context.Context, workerID int) {
	for {
		startTime := time.Now()
		err := s.runWorker(ctx, workerID)
		if nil != ctx.Err() {
			return
		}

		s.Logger.Error(
			"worker %d exited after %s (error: %v). Restarting in %s",
			workerID, time.Since(startTime), err, s.RestartDelay)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.RestartDelay):
		}
	}
}

func (s *Supervisor) runWorker(ctx context.Context, workerID int) errorsx.Error {
	cmd := s.NewWorkerCmd(workerID)

	err := cmd.Start()
	if nil != err {
		return errorsx.Wrap(err, "workerID", workerID)
	}

	s.Logger.Info("started worker %d (pid %d)", workerID, cmd.Process.Pid)

	exited := make(chan struct{})
	stopperDone := make(chan struct{})
	go func() {
		defer close(stopperDone)
		s.stopWorkerOnCancel(ctx, workerID, cmd, exited)
	}()

	err = cmd.Wait()
	close(exited)
	<-stopperDone

	if nil != err {
		return errorsx.Wrap(err, "workerID", workerID)
	}

	return nil
}

// stopWorkerOnCancel interrupts the worker when ctx is done, and kills it if it has not exited after the stop timeout
func (s *Supervisor) stopWorkerOnCancel(ctx context.Context, workerID int, cmd *exec.Cmd, exited <-chan struct{}) {
	select {
	case <-exited:
		return
	case <-ctx.Done():
	}

	s.Logger.Info("stopping worker %d (pid %d)", workerID, cmd.Process.Pid)
	signalErr := cmd.Process.Signal(os.Interrupt)
	if nil != signalErr {
		s.killWorker(workerID, cmd)
		return
	}

	select {
	case <-exited:
	case <-time.After(s.stopTimeout()):
		s.Logger.Error("worker %d did not stop after %s, killing it", workerID, s.stopTimeout())
		s.killWorker(workerID, cmd)
	}
}

func (s *Supervisor) killWorker(workerID int, cmd *exec.Cmd) {
	err := cmd.Process.Kill()
	if nil != err && os.ErrProcessDone != err {
		s.Logger.Error("couldn't kill worker %d (pid %d). Error: %s", workerID, cmd.Process.Pid, err)
	}
}

func (s *Supervisor) stopTimeout() time.Duration {
	if s.StopTimeout <= 0 {
		return DefaultStopTimeout
	}
	return s.StopTimeout
}
