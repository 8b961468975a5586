package process

import "os/exec"

// CancelGroup returns an exec.Cmd Cancel function that kills the whole
// process group of a started cmd.
func CancelGroup(cmd *exec.Cmd) func() error {
	return func() error {
		if cmd.Process == nil {
			return nil
		}
		return KillProcessGroup(cmd.Process.Pid)
	}
}
