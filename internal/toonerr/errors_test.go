package toonerr

import (
	"strings"
	"testing"
)

func TestDecodeErrorFormat(t *testing.T) {
	tests := []struct {
		name        string
		err         *DecodeError
		wantContain []string
	}{
		{
			name: "with snippet",
			err:  NewDecodeError(DecodeMalformedHeader, "missing closing bracket", 3, "tags[3: a,b,c"),
			wantContain: []string{
				"line 3",
				"MalformedHeader",
				"missing closing bracket",
				"   3 | tags[3: a,b,c",
			},
		},
		{
			name: "without snippet",
			err:  NewDecodeError(DecodeInvalidOptions, "unknown option", 0, ""),
			wantContain: []string{
				"InvalidOptions",
				"unknown option",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(false)
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("Format() missing %q in:\n%s", want, got)
				}
			}
		})
	}
}

func TestEncodeErrorMessage(t *testing.T) {
	err := NewEncodeError(EncodeUnsupportedValue, "cannot normalize channel", make(chan int))
	if !strings.Contains(err.Error(), "UnsupportedValue") {
		t.Fatalf("Error() = %q, want it to contain UnsupportedValue", err.Error())
	}
}
