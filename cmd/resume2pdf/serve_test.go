package main

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// listenAddr waits for the startup log line and returns its addr.
func listenAddr(t *testing.T, stdout *syncBuffer) string {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		sc := bufio.NewScanner(strings.NewReader(stdout.String()))
		for sc.Scan() {
			var line struct {
				Msg  string `json:"msg"`
				Addr string `json:"addr"`
			}
			if json.Unmarshal(sc.Bytes(), &line) == nil && line.Msg == "starting resume2pdf" {
				return line.Addr
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server did not log its address; stdout: %s", stdout)
	return ""
}

func TestRunServe_HealthAndShutdown(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env, stdout, stderr := testEnv()
	env.Context = ctx

	done := make(chan int, 1)
	go func() {
		done <- runMain([]string{
			"resume2pdf", "serve",
			"--addr", "127.0.0.1:0",
			"--workspace-root", filepath.Join(t.TempDir(), "ws"),
			"--workers", "3",
		}, env)
	}()

	addr := listenAddr(t, stdout)

	resp, err := http.Get("http://" + addr + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	var health struct {
		Status   string `json:"status"`
		Capacity int    `json:"capacity"`
	}
	err = json.NewDecoder(resp.Body).Decode(&health)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if health.Status != "ok" || health.Capacity != 3 {
		t.Errorf("health = %+v, want ok with capacity 3", health)
	}

	cancel()
	select {
	case code := <-done:
		if code != ExitSuccess {
			t.Errorf("runMain() = %d after shutdown, stderr: %s", code, stderr)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not stop after context cancellation")
	}

	if !strings.Contains(stdout.String(), "shutting down") {
		t.Error("missing shutdown log line")
	}
}

func TestRunServe_AddressInUse(t *testing.T) {
	t.Parallel()

	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer taken.Close()

	env, _, stderr := testEnv()
	code := runMain([]string{
		"resume2pdf", "serve",
		"--addr", taken.Addr().String(),
		"--workspace-root", filepath.Join(t.TempDir(), "ws"),
	}, env)

	if code != ExitGeneral {
		t.Errorf("runMain() = %d, want ExitGeneral", code)
	}
	if !strings.Contains(stderr.String(), "listening on") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRunServe_RejectsArguments(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	if code := runMain([]string{"resume2pdf", "serve", "resume.json"}, env); code != ExitUsage {
		t.Errorf("runMain() = %d, want ExitUsage", code)
	}
}
