package cluster

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperProcessEnvKey = "USERS_CLUSTER_APP_HELPER_PROCESS"

// Test_HelperProcess is not a real test. It is run as a worker process by the supervisor tests.
func Test_HelperProcess(t *testing.T) {
	mode := os.Getenv(helperProcessEnvKey)
	switch mode {
	case "":
		return
	case "exit":
		os.Exit(0)
	case "block":
		interrupted := make(chan os.Signal, 1)
		signal.Notify(interrupted, os.Interrupt)
		select {
		case <-interrupted:
			os.Exit(0)
		case <-time.After(time.Minute):
			os.Exit(1)
		}
	}
}

// lockedBuffer is safe to log to from several goroutines at once
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func helperProcessCmd(mode string) *exec.Cmd {
	cmd := exec.Command(os.Args[0], "-test.run=Test_HelperProcess")
	cmd.Env = append(os.Environ(), helperProcessEnvKey+"="+mode)
	return cmd
}

func runSupervisor(ctx context.Context, supervisor *Supervisor) chan errorsx.Error {
	errChan := make(chan errorsx.Error, 1)
	go func() {
		errChan <- supervisor.Run(ctx)
	}()
	return errChan
}

func Test_Supervisor_restartsWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logs := &lockedBuffer{}
	var startCount int32
	supervisor := &Supervisor{
		Logger:       logpkg.NewLogger(logs, logpkg.LogLevelInfo),
		WorkerCount:  2,
		RestartDelay: 10 * time.Millisecond,
		NewWorkerCmd: func(workerID int) *exec.Cmd {
			if atomic.AddInt32(&startCount, 1) >= 6 {
				cancel()
			}
			return helperProcessCmd("exit")
		},
	}

	errChan := runSupervisor(ctx, supervisor)

	select {
	case err := <-errChan:
		assert.Nil(t, err)
	case <-time.After(30 * time.Second):
		t.Fatal("supervisor did not stop")
	}

	assert.True(t, atomic.LoadInt32(&startCount) >= 6)

	var exitLines []string
	for _, line := range strings.Split(logs.String(), "\n") {
		if strings.Contains(line, "exited after") {
			exitLines = append(exitLines, line)
		}
	}
	require.NotEmpty(t, exitLines)
	for _, line := range exitLines {
		assert.Contains(t, line, "ERROR")
	}
}

func Test_Supervisor_stopsWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logs := &lockedBuffer{}
	workerStarted := make(chan int, 2)
	var startCount int32
	supervisor := &Supervisor{
		Logger:       logpkg.NewLogger(logs, logpkg.LogLevelInfo),
		WorkerCount:  2,
		RestartDelay: time.Millisecond,
		StopTimeout:  5 * time.Second,
		NewWorkerCmd: func(workerID int) *exec.Cmd {
			atomic.AddInt32(&startCount, 1)
			select {
			case workerStarted <- workerID:
			default:
			}
			return helperProcessCmd("block")
		},
	}

	errChan := runSupervisor(ctx, supervisor)

	<-workerStarted
	<-workerStarted
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		assert.Nil(t, err)
	case <-time.After(30 * time.Second):
		t.Fatal("supervisor did not stop")
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&startCount), "workers should not be restarted after the supervisor is stopped")
	assert.Equal(t, 2, strings.Count(logs.String(), "stopping worker"))
}

func Test_Supervisor_noWorkers(t *testing.T) {
	supervisor := &Supervisor{
		Logger:      logpkg.NewLogger(bytes.NewBuffer(nil), logpkg.LogLevelInfo),
		WorkerCount: 0,
	}

	err := supervisor.Run(context.Background())
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "expected at least 1 worker, but got 0")
}

func Test_killWorker_alreadyExited(t *testing.T) {
	logs := &lockedBuffer{}
	supervisor := &Supervisor{
		Logger:      logpkg.NewLogger(logs, logpkg.LogLevelInfo),
		WorkerCount: 1,
	}

	cmd := helperProcessCmd("exit")
	require.Nil(t, cmd.Run())

	supervisor.killWorker(1, cmd)

	assert.Equal(t, "", logs.String())
}
