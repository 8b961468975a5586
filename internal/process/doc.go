// Package process isolates child processes in their own process group and
// terminates the whole group, so a killed compiler cannot leave helper
// processes behind.
package process
