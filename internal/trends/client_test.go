package trends

import "testing"

func TestStripXSSIPrefix(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "object with guard",
			body: ")]}'\n{\"widgets\":[]}",
			want: "{\"widgets\":[]}",
		},
		{
			name: "array with guard",
			body: ")]}',\n[1,2,3]",
			want: "[1,2,3]",
		},
		{
			name: "clean object untouched",
			body: "{\"a\":1}",
			want: "{\"a\":1}",
		},
		{
			name: "no json at all",
			body: "plain text",
			want: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(stripXSSIPrefix([]byte(tt.body))); got != tt.want {
				t.Errorf("stripXSSIPrefix(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	c := New("US", 0)
	if c.windowDays != 30 {
		t.Errorf("windowDays = %d, want 30", c.windowDays)
	}
}
