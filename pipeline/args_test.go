package pipeline

import (
	"testing"
)

func TestParseDateArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantString string
		wantErr    bool
	}{
		{
			name:       "no args processes everything",
			args:       nil,
			wantString: "all data",
		},
		{
			name:       "single date",
			args:       []string{"2025-03-10"},
			wantString: "date 2025-03-10",
		},
		{
			name:       "date range",
			args:       []string{"2025-03-01", "2025-03-10"},
			wantString: "date range 2025-03-01 to 2025-03-10",
		},
		{
			name:    "bad date format",
			args:    []string{"10-03-2025"},
			wantErr: true,
		},
		{
			name:    "bad second date",
			args:    []string{"2025-03-01", "not-a-date"},
			wantErr: true,
		},
		{
			name:    "start after end",
			args:    []string{"2025-03-10", "2025-03-01"},
			wantErr: true,
		},
		{
			name:    "too many arguments",
			args:    []string{"2025-03-01", "2025-03-05", "2025-03-10"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := ParseDateArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateArgs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := filter.String(); got != tt.wantString {
				t.Errorf("ParseDateArgs(%v) = %q, want %q", tt.args, got, tt.wantString)
			}
		})
	}
}
