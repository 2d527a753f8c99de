package common

import "testing"

func TestKeyCodes(t *testing.T) {
	tests := []struct {
		name string
		key  int
		want int
	}{
		{"space", KeySpace, 32},
		{"minus", KeyMinus, '-'},
		{"equal", KeyEqual, '='},
		{"f", KeyF, 'F'},
		{"r", KeyR, 'R'},
		{"t", KeyT, 'T'},
		{"escape", KeyEsc, 256},
		{"backspace", KeyBackspace, 259},
		{"delete", KeyDelete, 261},
		{"right", KeyRight, 262},
		{"up", KeyUp, 265},
		{"keypad subtract", KeyKPSubtract, 333},
		{"keypad add", KeyKPAdd, 334},
	}

	seen := make(map[int]string)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key != tt.want {
				t.Errorf("key = %d, want %d", tt.key, tt.want)
			}
			if other, ok := seen[tt.key]; ok {
				t.Errorf("key %d shared with %s", tt.key, other)
			}
			seen[tt.key] = tt.name
		})
	}
}
