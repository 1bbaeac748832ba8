package config

import (
	"strings"
	"testing"
)

func TestResolveConfigPath(t *testing.T) {
	tests := []struct {
		name        string
		goos        string
		home        string
		programData string
		want        string
	}{
		{
			name: "linux",
			goos: "linux",
			home: "/home/user",
			want: "/etc/minutes/config.yaml",
		},
		{
			name: "darwin",
			goos: "darwin",
			home: "/Users/test",
			want: "/Users/test/Library/Application Support/minutes/config.yaml",
		},
		{
			name:        "windows",
			goos:        "windows",
			programData: "C:\\ProgramData",
			want:        "C:/ProgramData/minutes/config.yaml",
		},
		{
			name: "windows default ProgramData",
			goos: "windows",
			want: "C:/ProgramData/minutes/config.yaml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveConfigPath(tt.goos, tt.home, tt.programData, "config.yaml")
			got = strings.ReplaceAll(got, "\\", "/")
			if got != tt.want {
				t.Errorf("config path: got %q want %q", got, tt.want)
			}
		})
	}
}
