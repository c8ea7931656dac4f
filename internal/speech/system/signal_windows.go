//go:build windows

package system

import "os/exec"

func pause(*exec.Cmd) error { return errPauseUnsupported }

func resume(*exec.Cmd) error { return nil }
