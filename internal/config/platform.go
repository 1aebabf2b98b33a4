package config

import "runtime"

func defaultInterpreter() string {
	if runtime.GOOS == "windows" {
		return "py"
	}
	return "python3"
}
