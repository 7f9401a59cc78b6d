package clarice

import (
	"strings"
	"testing"
)

func Test_Core_Text_Helpers(t *testing.T) {
	pre := `using Text from Clarice/Core then `
	wantStr(t, evalSrc(t, pre+`Text.Upper("héllo")`), "HÉLLO")
	wantStr(t, evalSrc(t, pre+`Text.Lower("HÉLLO")`), "héllo")
	wantInt(t, evalSrc(t, pre+`Text.Length("héllo")`), 5)
	wantStr(t, evalSrc(t, pre+`Text.Reverse("abc")`), "cba")
	wantBool(t, evalSrc(t, pre+`Text.Contains("haystack", "sta")`), true)
	wantBool(t, evalSrc(t, pre+`Text.Contains("haystack", "xyz")`), false)
}

func Test_Core_Text_Rejects_NonString(t *testing.T) {
	err := evalErr(t, `using Text from Clarice/Core then Text.Upper(7)`)
	if !strings.Contains(err.Error(), "must be String") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func Test_Core_Math_Abs_Keeps_Kind(t *testing.T) {
	pre := `using Math from Clarice/Core then `
	wantInt(t, evalSrc(t, pre+`Math.Abs(-3)`), 3)
	wantInt(t, evalSrc(t, pre+`Math.Abs(3)`), 3)
	wantNum(t, evalSrc(t, pre+`Math.Abs(-2.5)`), 2.5)
}

func Test_Core_Math_Min_Max_Keep_Kind(t *testing.T) {
	pre := `using Math from Clarice/Core then `
	wantInt(t, evalSrc(t, pre+`Math.Min(3, 5)`), 3)
	wantInt(t, evalSrc(t, pre+`Math.Max(3, 5)`), 5)
	wantNum(t, evalSrc(t, pre+`Math.Min(2.5, 3)`), 2.5)
	wantInt(t, evalSrc(t, pre+`Math.Min(2, 2.5)`), 2)
}

func Test_Core_Math_Sqrt(t *testing.T) {
	pre := `using Math from Clarice/Core then `
	wantNum(t, evalSrc(t, pre+`Math.Sqrt(9)`), 3)
	err := evalErr(t, pre+`Math.Sqrt(-1)`)
	if !strings.Contains(err.Error(), "negative") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func Test_Core_List_Helpers(t *testing.T) {
	pre := `using List from Clarice/Core then `
	wantInt(t, evalSrc(t, pre+`List.Length([1, 2, 3])`), 3)
	wantStr(t, evalSrc(t, pre+`List.Join([1, "two", 3.5], ", ")`), "1, two, 3.5")
	wantStr(t, evalSrc(t, pre+`List.Join([], "-")`), "")
}

func Test_Core_List_Append_Copies(t *testing.T) {
	src := `
using List from Clarice/Core
let xs
set xs to [1, 2]
let ys
set ys to List.Append(xs, 3)
xs`
	v := evalSrc(t, src)
	if v.Tag != VTList || len(v.Data.([]Value)) != 2 {
		t.Fatalf("Append must not mutate its argument, got %#v", v)
	}
	wantInt(t, evalSrc(t, `using List from Clarice/Core then List.Length(List.Append([1, 2], 3))`), 3)
}
