package main

import (
	"bytes"
	"flag"
	"strings"
	"testing"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		path string
		ok   bool
	}{
		{"no file", nil, "", false},
		{"flags only", []string{"-fit"}, "", false},
		{"two files", []string{"a.obj", "b.obj"}, "", false},
		{"one file", []string{"model.obj"}, "model.obj", true},
		{"flags before the file", []string{"-fit", "model.obj"}, "model.obj", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			fs := flag.NewFlagSet("obj-viewer", flag.ContinueOnError)
			fs.SetOutput(&out)
			fs.Bool("fit", false, "center the mesh and scale it to a unit box")

			path, ok := parse_args(fs, tc.args)
			if path != tc.path || ok != tc.ok {
				t.Fatalf("parse_args(%q) = (%q, %v), want (%q, %v)", tc.args, path, ok, tc.path, tc.ok)
			}

			if tc.ok {
				if out.Len() != 0 {
					t.Errorf("unexpected output: %q", out.String())
				}
				return
			}
			if !strings.HasPrefix(out.String(), "Usage: obj-viewer <obj_file.obj>\n") {
				t.Errorf("output = %q, want the usage line first", out.String())
			}
			if !strings.Contains(out.String(), "-fit") {
				t.Errorf("output = %q, want the flag defaults", out.String())
			}
		})
	}
}

func TestParseArgsBadFlag(t *testing.T) {
	var out bytes.Buffer
	fs := flag.NewFlagSet("obj-viewer", flag.ContinueOnError)
	fs.SetOutput(&out)

	if _, ok := parse_args(fs, []string{"-nope", "model.obj"}); ok {
		t.Fatal("parse_args accepted an unknown flag")
	}
	if !strings.Contains(out.String(), "Usage: obj-viewer <obj_file.obj>") {
		t.Errorf("output = %q, want the usage", out.String())
	}
}
