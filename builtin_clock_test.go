package clarice

import (
	"strings"
	"testing"
	"time"
)

func Test_IO_Clock_Now_Is_RFC3339(t *testing.T) {
	v := evalSrc(t, `using Clock from Clarice/IO then Clock.Now()`)
	if v.Tag != VTStr {
		t.Fatalf("want string, got %#v", v)
	}
	if _, err := time.Parse(time.RFC3339, v.Data.(string)); err != nil {
		t.Fatalf("bad timestamp %q: %v", v.Data, err)
	}
}

func Test_IO_Clock_UnixMillis_Advances(t *testing.T) {
	before := time.Now().UnixMilli()
	v := evalSrc(t, `using Clock from Clarice/IO then Clock.UnixMillis()`)
	if v.Tag != VTInt || v.Data.(int64) < before {
		t.Fatalf("want millis >= %d, got %#v", before, v)
	}
}

func Test_IO_Clock_Sleep_Rejects_Negative(t *testing.T) {
	err := evalErr(t, `using Clock from Clarice/IO then Clock.Sleep(-1)`)
	if !strings.Contains(err.Error(), "cannot sleep") {
		t.Fatalf("unexpected message: %v", err)
	}
}
