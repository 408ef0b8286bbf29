package git

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/sbsdiff/sbs/internal/diff"
)

// binaryRe matches git's marker for files it refuses to diff as text and
// captures the old-side and new-side paths without their a/ and b/ prefixes.
var binaryRe = regexp.MustCompile(`(?m)^Binary files (?:a/)?(.*?) and (?:b/)?(.*?) differ$`)

// binaryPaths collects every path named by a binary marker. /dev/null is
// left out so created and deleted text files are never tainted by it.
func binaryPaths(raw string) map[string]struct{} {
	paths := make(map[string]struct{})
	for _, m := range binaryRe.FindAllStringSubmatch(raw, -1) {
		for _, p := range m[1:] {
			if p != diff.DevNull {
				paths[p] = struct{}{}
			}
		}
	}
	return paths
}

func markedBinary(binary map[string]struct{}, path string) bool {
	if path == diff.DevNull {
		return false
	}
	_, ok := binary[path]
	return ok
}

// ParseDiff parses unified diff text into files. Empty input yields no files.
func ParseDiff(raw string) ([]diff.File, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, err
	}

	binary := binaryPaths(raw)
	files := make([]diff.File, 0, len(parsed))
	for _, pf := range parsed {
		files = append(files, convertFile(pf, binary))
	}
	return files, nil
}

func convertFile(pf *gitdiff.File, binary map[string]struct{}) diff.File {
	f := diff.File{
		From: pf.OldName,
		To:   pf.NewName,
	}
	if pf.IsNew || f.From == "" {
		f.From = diff.DevNull
	}
	if pf.IsDelete || f.To == "" {
		f.To = diff.DevNull
	}

	f.Binary = pf.IsBinary || markedBinary(binary, f.To) || markedBinary(binary, f.From)
	if f.Binary {
		return f
	}

	f.Hunks = make([]diff.Hunk, 0, len(pf.TextFragments))
	for _, frag := range pf.TextFragments {
		h := convertFragment(frag)
		for _, l := range h.Lines {
			switch l.Kind {
			case diff.LineAdded:
				f.Additions++
			case diff.LineDeleted:
				f.Deletions++
			}
		}
		f.Hunks = append(f.Hunks, h)
	}
	return f
}

// hunkRange formats one side of a hunk header the way git does, leaving the
// count out when it is 1.
func hunkRange(pos, lines int64) string {
	if lines == 1 {
		return strconv.FormatInt(pos, 10)
	}
	return fmt.Sprintf("%d,%d", pos, lines)
}

func convertFragment(frag *gitdiff.TextFragment) diff.Hunk {
	h := diff.Hunk{
		Header: "@@ -" + hunkRange(frag.OldPosition, frag.OldLines) +
			" +" + hunkRange(frag.NewPosition, frag.NewLines) + " @@",
		OldStart: int(frag.OldPosition),
		OldLines: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewLines: int(frag.NewLines),
		Lines:    make([]diff.ChangeLine, 0, len(frag.Lines)),
	}
	if frag.Comment != "" {
		h.Header += " " + frag.Comment
	}

	oldLn, newLn := h.OldStart, h.NewStart
	for _, line := range frag.Lines {
		content := line.Op.String() + strings.TrimSuffix(line.Line, "\n")
		switch line.Op {
		case gitdiff.OpDelete:
			h.Lines = append(h.Lines, diff.ChangeLine{Kind: diff.LineDeleted, Content: content, OldLine: oldLn})
			oldLn++
		case gitdiff.OpAdd:
			h.Lines = append(h.Lines, diff.ChangeLine{Kind: diff.LineAdded, Content: content, NewLine: newLn})
			newLn++
		default:
			h.Lines = append(h.Lines, diff.ChangeLine{Kind: diff.LineContext, Content: content, OldLine: oldLn, NewLine: newLn})
			oldLn++
			newLn++
		}
	}
	return h
}
