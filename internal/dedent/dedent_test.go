package dedent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "uniform indent stripped",
			input: "    echo a\n    echo b",
			want:  "echo a\necho b",
		},
		{
			name:  "relative indent preserved",
			input: "    if true; then\n      echo a\n    fi",
			want:  "if true; then\n  echo a\nfi",
		},
		{
			name:  "single line is untouched",
			input: "   pytest -v",
			want:  "   pytest -v",
		},
		{
			name:  "already flush",
			input: "echo a\n  echo b",
			want:  "echo a\n  echo b",
		},
		{
			name:  "empty line zeroes the minimum",
			input: "    echo a\n\n    echo b",
			want:  "    echo a\n\n    echo b",
		},
		{
			name:  "all-space line caps the minimum",
			input: "    echo a\n  \n    echo b",
			want:  "  echo a\n\n  echo b",
		},
		{
			name:  "newline inside single quotes stays indented",
			input: "    echo 'a\n      b'\n    echo c",
			want:  "echo 'a\n      b'\necho c",
		},
		{
			name:  "newline inside double quotes stays indented",
			input: "    printf \"a\n    b\"\n    done",
			want:  "printf \"a\n    b\"\ndone",
		},
		{
			name:  "escaped quote does not open a span",
			input: "    echo \\'x\n    echo y",
			want:  "echo \\'x\necho y",
		},
		{
			name:  "unterminated quote swallows the rest",
			input: "    echo 'a\n    b",
			want:  "    echo 'a\n    b",
		},
		{
			name:  "nested quotes",
			input: "    echo \"it's\n      fine\"\n    echo done",
			want:  "echo \"it's\n      fine\"\necho done",
		},
		{
			name:  "tabs are not indentation",
			input: "\techo a\n\techo b",
			want:  "\techo a\n\techo b",
		},
		{
			name:  "all-space lines dedent to nothing",
			input: "  \n  ",
			want:  "\n",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "trailing all-space line participates",
			input: "        go vet ./...\n        go test ./...\n        ",
			want:  "go vet ./...\ngo test ./...\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dedent(tt.input))
		})
	}
}

func TestDedentIdempotent(t *testing.T) {
	inputs := []string{
		"    echo a\n    echo b",
		"    echo 'a\n      b'\n    echo c",
		"  a\n\n    b",
		"echo a",
	}
	for _, input := range inputs {
		once := Dedent(input)
		assert.Equal(t, once, Dedent(once), "input %q", input)
	}
}
