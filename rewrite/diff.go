package rewrite

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const diffContext = 3

type diffLine struct {
	op   byte
	text string
}

// Diff renders a unified diff between two versions of the file at path.
func Diff(path, before, after string) string {
	if before == after {
		return ""
	}
	lines := diffLines(before, after)
	oldNo := make([]int, len(lines))
	newNo := make([]int, len(lines))
	o, n := 1, 1
	for i, l := range lines {
		oldNo[i], newNo[i] = o, n
		switch l.op {
		case ' ':
			o++
			n++
		case '-':
			o++
		case '+':
			n++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	i := 0
	for i < len(lines) {
		for i < len(lines) && lines[i].op == ' ' {
			i++
		}
		if i >= len(lines) {
			break
		}
		start := max(0, i-diffContext)
		end := i
		for {
			for end < len(lines) && lines[end].op != ' ' {
				end++
			}
			next := end
			for next < len(lines) && lines[next].op == ' ' && next-end <= 2*diffContext {
				next++
			}
			if next < len(lines) && lines[next].op != ' ' {
				end = next
				continue
			}
			break
		}
		stop := min(len(lines), end+diffContext)
		writeHunk(&sb, lines[start:stop], oldNo[start], newNo[start])
		i = stop
	}
	return sb.String()
}

func writeHunk(sb *strings.Builder, lines []diffLine, oldStart, newStart int) {
	oldCount, newCount := 0, 0
	for _, l := range lines {
		if l.op != '+' {
			oldCount++
		}
		if l.op != '-' {
			newCount++
		}
	}
	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, l := range lines {
		sb.WriteByte(l.op)
		sb.WriteString(l.text)
		if !strings.HasSuffix(l.text, "\n") {
			sb.WriteString("\n\\ No newline at end of file\n")
		}
	}
}

func diffLines(before, after string) []diffLine {
	dmp := diffmatchpatch.New()
	a, b, index := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), index)

	var lines []diffLine
	for _, d := range diffs {
		var op byte
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = ' '
		case diffmatchpatch.DiffDelete:
			op = '-'
		case diffmatchpatch.DiffInsert:
			op = '+'
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}
			lines = append(lines, diffLine{op: op, text: text})
		}
	}
	return lines
}
