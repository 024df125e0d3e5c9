package timeslot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		want   Clock
		wantOK bool
	}{
		{input: "12:00 AM", want: Clock{Hour: 0, Minute: 0}, wantOK: true},
		{input: "12:30 PM", want: Clock{Hour: 12, Minute: 30}, wantOK: true},
		{input: "6 AM - 7 AM", want: Clock{Hour: 6, Minute: 0}, wantOK: true},
		{input: "6:00 AM - 7:00 AM", want: Clock{Hour: 6, Minute: 0}, wantOK: true},
		{input: "9:15 pm", want: Clock{Hour: 21, Minute: 15}, wantOK: true},
		{input: "slot 11:45PM to midnight", want: Clock{Hour: 23, Minute: 45}, wantOK: true},
		{input: "1 PM", want: Clock{Hour: 13, Minute: 0}, wantOK: true},
		{input: "10:75 AM", want: Clock{Hour: 10, Minute: 75}, wantOK: true},
		{input: "18:00 - 19:00", wantOK: false},
		{input: "", wantOK: false},
		{input: "morning", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	for h := 1; h <= 12; h++ {
		for _, marker := range []string{"AM", "PM"} {
			for _, minute := range []int{0, 15, 59} {
				input := fmt.Sprintf("%d:%02d %s", h, minute, marker)
				first, ok := Parse(input)
				assert.True(t, ok, input)

				second, _ := Parse(input)
				assert.Equal(t, first, second, input)

				assert.GreaterOrEqual(t, first.Hour, 0, input)
				assert.LessOrEqual(t, first.Hour, 23, input)
				assert.Equal(t, minute, first.Minute, input)
			}
		}
	}
}

func TestClock_String(t *testing.T) {
	assert.Equal(t, "06:05", Clock{Hour: 6, Minute: 5}.String())
}
