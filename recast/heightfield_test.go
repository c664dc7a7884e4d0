package recast

import "testing"

func TestIMinIMaxIAbs(t *testing.T) {
	ttable := []struct {
		a, b             int32
		wantMin, wantMax int32
	}{
		{1, 2, 1, 2},
		{2, 1, 1, 2},
		{-3, 3, -3, 3},
	}
	for _, tt := range ttable {
		if got := iMin(tt.a, tt.b); got != tt.wantMin {
			t.Errorf("iMin(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.wantMin)
		}
		if got := iMax(tt.a, tt.b); got != tt.wantMax {
			t.Errorf("iMax(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.wantMax)
		}
	}

	if got := iAbs(-5); got != 5 {
		t.Errorf("iAbs(-5) = %d, want 5", got)
	}
	if got := iAbs(5); got != 5 {
		t.Errorf("iAbs(5) = %d, want 5", got)
	}
}

func TestGetSetCon(t *testing.T) {
	var s CompactSpan

	for dir := int32(0); dir < 4; dir++ {
		if got := GetCon(&s, dir); got != 0 {
			t.Errorf("GetCon(dir=%d) on zero span = %d, want 0", dir, got)
		}
	}

	SetCon(&s, 0, NotConnected)
	SetCon(&s, 1, 5)
	SetCon(&s, 2, 63)
	SetCon(&s, 3, 0)

	if got := GetCon(&s, 0); got != NotConnected {
		t.Errorf("GetCon(dir=0) = %d, want NotConnected", got)
	}
	if got := GetCon(&s, 1); got != 5 {
		t.Errorf("GetCon(dir=1) = %d, want 5", got)
	}
	if got := GetCon(&s, 2); got != 63 {
		t.Errorf("GetCon(dir=2) = %d, want 63", got)
	}
	if got := GetCon(&s, 3); got != 0 {
		t.Errorf("GetCon(dir=3) = %d, want 0", got)
	}
}

func TestDirOffsets(t *testing.T) {
	wantX := [4]int32{-1, 0, 1, 0}
	wantZ := [4]int32{0, 1, 0, -1}
	for d := int32(0); d < 4; d++ {
		if got := GetDirOffsetX(d); got != wantX[d] {
			t.Errorf("GetDirOffsetX(%d) = %d, want %d", d, got, wantX[d])
		}
		if got := GetDirOffsetY(d); got != wantZ[d] {
			t.Errorf("GetDirOffsetY(%d) = %d, want %d", d, got, wantZ[d])
		}
	}
}
