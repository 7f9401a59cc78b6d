package clarice

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_IO_File_Write_Then_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	src := fmt.Sprintf(`
using File from Clarice/IO
File.WriteText(%q, "line one\nline two")
File.ReadText(%q)`, path, path)
	wantStr(t, evalSrc(t, src), "line one\nline two")
}

func Test_IO_File_WriteText_Returns_Path(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	src := fmt.Sprintf(`using File from Clarice/IO then File.WriteText(%q, "x")`, path)
	wantStr(t, evalSrc(t, src), path)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file missing: %v", err)
	}
}

func Test_IO_File_ReadText_Missing_Is_RuntimeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	err := evalErr(t, fmt.Sprintf(`using File from Clarice/IO then File.ReadText(%q)`, path))
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("want *RuntimeError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "cannot read") {
		t.Fatalf("unexpected message: %v", err)
	}
}
